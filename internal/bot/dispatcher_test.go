package bot

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/jkassel/checkin-bot-go/internal/ctxutil"
	"github.com/jkassel/checkin-bot-go/internal/logger"
	"github.com/jkassel/checkin-bot-go/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestDispatcher(cmds ...Command) (*Dispatcher, *metrics.Metrics) {
	registry := NewRegistry()
	for _, cmd := range cmds {
		registry.Register(cmd)
	}

	m := metrics.New(prometheus.NewRegistry())
	d := NewDispatcher(DispatcherConfig{
		Registry: registry,
		Logger:   logger.NewWithWriter("error", io.Discard),
		Metrics:  m,
	})
	return d, m
}

func TestDispatch_Ping(t *testing.T) {
	t.Parallel()

	d, m := newTestDispatcher()
	resp := d.Dispatch(context.Background(), []byte(`{"type":1}`))

	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusOK)
	}
	if resp.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want application/json", resp.ContentType)
	}
	if string(resp.Body) != `{"type":1}` {
		t.Errorf("Body = %s, want {\"type\":1}", resp.Body)
	}
	if got := testutil.ToFloat64(m.InteractionsTotal.WithLabelValues("ping", "success")); got != 1 {
		t.Errorf("ping success counter = %v, want 1", got)
	}
}

func TestDispatch_PingRepeatsAreByteIdentical(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	first := d.Dispatch(context.Background(), []byte(`{"type":1}`))
	for i := 0; i < 3; i++ {
		again := d.Dispatch(context.Background(), []byte(`{"type":1}`))
		if !bytes.Equal(first.Body, again.Body) {
			t.Fatalf("ping responses differ: %s vs %s", first.Body, again.Body)
		}
	}
}

func TestDispatch_MalformedPayload(t *testing.T) {
	t.Parallel()

	d, m := newTestDispatcher()
	resp := d.Dispatch(context.Background(), []byte(`{"type":`))

	if resp.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusBadRequest)
	}
	if string(resp.Body) != `{"error":"Invalid interaction payload"}` {
		t.Errorf("Body = %s", resp.Body)
	}
	if got := testutil.ToFloat64(m.InteractionsTotal.WithLabelValues("invalid", "rejected")); got != 1 {
		t.Errorf("invalid rejected counter = %v, want 1", got)
	}
}

func TestDispatch_UnknownKind(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	resp := d.Dispatch(context.Background(), []byte(`{"type":3,"id":"1","token":"t"}`))

	if resp.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusBadRequest)
	}
	if string(resp.Body) != `{"error":"Unhandled interaction type"}` {
		t.Errorf("Body = %s", resp.Body)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(&stubCommand{name: "checkin"})
	body := `{"type":2,"id":"1","token":"t","data":{"name":"unregistered"}}`
	resp := d.Dispatch(context.Background(), []byte(body))

	if resp.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusBadRequest)
	}
	if string(resp.Body) != `{"error":"Unhandled command"}` {
		t.Errorf("Body = %s", resp.Body)
	}
}

func TestDispatch_CommandRoutesToHandler(t *testing.T) {
	t.Parallel()

	cmd := &stubCommand{name: "checkin", executeResp: Empty(http.StatusOK)}
	d, m := newTestDispatcher(cmd)

	body := `{
		"type": 2,
		"id": "inter-1",
		"token": "tok",
		"data": {"name": "checkin", "options": [{"name": "location", "value": "Central Park"}]},
		"member": {"user": {"id": "42", "username": "ace_main"}}
	}`
	resp := d.Dispatch(context.Background(), []byte(body))

	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusOK)
	}
	if len(resp.Body) != 0 {
		t.Errorf("Body = %s, want empty", resp.Body)
	}
	if cmd.executeCalls != 1 {
		t.Fatalf("executeCalls = %d, want 1", cmd.executeCalls)
	}
	if got := ctxutil.GetInteractionID(cmd.lastCtx); got != "inter-1" {
		t.Errorf("interaction id in handler context = %q, want inter-1", got)
	}
	if got := ctxutil.GetUserID(cmd.lastCtx); got != "42" {
		t.Errorf("user id in handler context = %q, want 42", got)
	}
	if !cmd.hadDeadline {
		t.Error("handler context should carry a deadline")
	}
	if got := testutil.ToFloat64(m.InteractionsTotal.WithLabelValues("command", "success")); got != 1 {
		t.Errorf("command success counter = %v, want 1", got)
	}
}

func TestDispatch_CommandHandlerOutlivesRequestCancellation(t *testing.T) {
	t.Parallel()

	cmd := &stubCommand{name: "checkin", executeResp: Empty(http.StatusOK)}
	d, _ := newTestDispatcher(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := `{"type":2,"id":"inter-1","token":"tok","data":{"name":"checkin"}}`
	d.Dispatch(ctx, []byte(body))

	if cmd.executeCalls != 1 {
		t.Fatalf("executeCalls = %d, want 1", cmd.executeCalls)
	}
	if cmd.ctxErrAtCall != nil {
		t.Errorf("handler context should be detached from the request, got %v", cmd.ctxErrAtCall)
	}
}

func TestDispatch_AutocompleteRoutesToHandler(t *testing.T) {
	t.Parallel()

	cmd := &stubCommand{name: "checkin", autoResp: Text(http.StatusOK, "choices")}
	d, _ := newTestDispatcher(cmd)

	body := `{"type":4,"id":"inter-2","token":"tok","data":{"name":"checkin","options":[{"name":"location","value":"Cen","focused":true}]}}`
	resp := d.Dispatch(context.Background(), []byte(body))

	if cmd.autoCalls != 1 {
		t.Fatalf("autoCalls = %d, want 1", cmd.autoCalls)
	}
	if string(resp.Body) != "choices" {
		t.Errorf("Body = %s, want choices", resp.Body)
	}
}

func TestDispatch_AutocompleteUnknownCommandDegrades(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	body := `{"type":4,"id":"1","token":"t","data":{"name":"unregistered"}}`
	resp := d.Dispatch(context.Background(), []byte(body))

	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusOK)
	}
	if string(resp.Body) != `{"type":8,"data":{"choices":[]}}` {
		t.Errorf("Body = %s", resp.Body)
	}
}
