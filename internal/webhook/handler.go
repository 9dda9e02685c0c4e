// Package webhook terminates Discord interaction callbacks over HTTP. Every
// request is authenticated against the application's ed25519 key before a
// single byte of the payload is interpreted; verified payloads go to the
// interaction dispatcher and its response is relayed as-is.
package webhook

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jkassel/checkin-bot-go/internal/bot"
	domerrors "github.com/jkassel/checkin-bot-go/internal/errors"
	"github.com/jkassel/checkin-bot-go/internal/logger"
	"github.com/jkassel/checkin-bot-go/internal/metrics"
)

// ModuleName identifies this module in logs and metrics.
const ModuleName = "webhook"

// Signature headers Discord sets on every interaction callback.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// maxBodyBytes bounds the request body read. Interaction payloads are a few
// kilobytes at most; anything bigger is not Discord.
const maxBodyBytes = 1 << 20

// Handler handles Discord interaction callbacks.
type Handler struct {
	publicKey  ed25519.PublicKey
	dispatcher *bot.Dispatcher
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	PublicKey  string // hex-encoded application verification key
	Dispatcher *bot.Dispatcher
	Metrics    *metrics.Metrics
	Logger     *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	key, err := ParsePublicKey(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("parse verification key: %w", err)
	}

	return &Handler{
		publicKey:  key,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}, nil
}

// Handle is the Gin handler for the interactions endpoint
func (h *Handler) Handle(c *gin.Context) {
	// 1. Read the raw body; verification needs the exact bytes on the wire
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		errType := "body_read"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
			errType = "body_too_large"
		}
		h.metrics.RecordHTTPError(errType, ModuleName)
		h.logger.WithModule(ModuleName).WithError(err).Warn("Failed to read request body")
		c.Status(status)
		return
	}

	// 2. Authenticate before touching the payload
	signature := c.GetHeader(HeaderSignature)
	timestamp := c.GetHeader(HeaderTimestamp)
	if !VerifySignature(h.publicKey, signature, timestamp, body) {
		h.metrics.RecordHTTPError("invalid_signature", ModuleName)
		h.logger.WithModule(ModuleName).Warn("Rejected request with invalid signature")
		writeResponse(c, bot.Text(http.StatusUnauthorized, domerrors.ErrInvalidSignature.Error()))
		return
	}

	// 3. Dispatch and relay whatever the dispatcher produced
	writeResponse(c, h.dispatcher.Dispatch(c.Request.Context(), body))
}

// writeResponse puts a dispatcher response on the wire. An empty body
// acknowledges with the bare status code.
func writeResponse(c *gin.Context, resp bot.Response) {
	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		return
	}
	c.Data(resp.Status, resp.ContentType, resp.Body)
}
