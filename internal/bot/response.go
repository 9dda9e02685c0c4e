package bot

import (
	"encoding/json"
	"net/http"
)

// Response is the synchronous HTTP reply produced for one inbound
// interaction. Exactly one Response is produced per payload.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// JSON builds an application/json response from the given payload.
func JSON(status int, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{
			Status:      http.StatusInternalServerError,
			ContentType: "application/json",
			Body:        []byte(`{"error":"Internal server error"}`),
		}
	}
	return Response{
		Status:      status,
		ContentType: "application/json",
		Body:        body,
	}
}

// ErrorJSON builds the {"error": ...} body used for protocol-level
// rejections.
func ErrorJSON(status int, message string) Response {
	return JSON(status, map[string]string{"error": message})
}

// Text builds a text/plain response.
func Text(status int, body string) Response {
	return Response{
		Status:      status,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(body),
	}
}

// Empty builds a bodyless response with the given status.
func Empty(status int) Response {
	return Response{Status: status}
}
