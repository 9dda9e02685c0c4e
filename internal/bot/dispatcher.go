package bot

import (
	"context"
	"net/http"
	"time"

	"github.com/jkassel/checkin-bot-go/internal/config"
	"github.com/jkassel/checkin-bot-go/internal/ctxutil"
	"github.com/jkassel/checkin-bot-go/internal/discordutil"
	"github.com/jkassel/checkin-bot-go/internal/logger"
	"github.com/jkassel/checkin-bot-go/internal/metrics"
)

// Dispatcher classifies verified interaction payloads and routes them to
// the registered command handlers. It keeps no state between requests and
// produces exactly one Response per payload.
type Dispatcher struct {
	registry *Registry
	logger   *logger.Logger
	metrics  *metrics.Metrics

	// Configuration
	ackDeadline time.Duration
}

// DispatcherConfig holds dependencies for creating a new Dispatcher.
type DispatcherConfig struct {
	Registry *Registry
	Logger   *logger.Logger
	Metrics  *metrics.Metrics

	// AckDeadline bounds handler execution. Defaults to the platform
	// acknowledgment deadline when zero.
	AckDeadline time.Duration
}

// NewDispatcher creates a new interaction dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	ackDeadline := cfg.AckDeadline
	if ackDeadline <= 0 {
		ackDeadline = config.InteractionAckDeadline
	}

	return &Dispatcher{
		registry:    cfg.Registry,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		ackDeadline: ackDeadline,
	}
}

// Dispatch parses and routes one interaction payload. The payload must
// already have passed signature verification.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) Response {
	start := time.Now()

	inter, err := ParseInteraction(body)
	if err != nil {
		d.metrics.RecordInteraction("invalid", "rejected", time.Since(start).Seconds())
		d.logger.WithModule("bot").WithError(err).Warn("Rejected malformed interaction payload")
		return ErrorJSON(http.StatusBadRequest, "Invalid interaction payload")
	}

	// Inject tracing values for downstream handlers and log records
	if inter.ID != "" {
		ctx = ctxutil.WithInteractionID(ctx, inter.ID)
	}
	if userID := inter.UserID(); userID != "" {
		ctx = ctxutil.WithUserID(ctx, userID)
	}

	switch inter.Kind {
	case KindPing:
		d.metrics.RecordInteraction("ping", "success", time.Since(start).Seconds())
		return JSON(http.StatusOK, discordutil.Pong())

	case KindCommand:
		return d.dispatchCommand(ctx, inter, start)

	case KindAutocomplete:
		return d.dispatchAutocomplete(ctx, inter, start)

	default:
		d.metrics.RecordInteraction("unknown", "rejected", time.Since(start).Seconds())
		d.logger.WithModule("bot").Warnf("Unhandled interaction type: %d", int(inter.Kind))
		return ErrorJSON(http.StatusBadRequest, "Unhandled interaction type")
	}
}

// dispatchCommand routes a command submission to its registered handler.
func (d *Dispatcher) dispatchCommand(ctx context.Context, inter *Interaction, start time.Time) Response {
	name := inter.CommandName()
	log := d.logger.WithModule("bot").WithInteractionID(inter.ID).WithField("command", name)

	cmd := d.registry.Get(name)
	if cmd == nil {
		d.metrics.RecordInteraction("command", "unhandled", time.Since(start).Seconds())
		log.Warn("No handler registered for command")
		return ErrorJSON(http.StatusBadRequest, "Unhandled command")
	}

	// Handlers run on a detached context bounded by the acknowledgment
	// deadline, so a dropped inbound connection does not cancel them.
	execCtx, cancel := context.WithTimeout(ctxutil.PreserveTracing(ctx), d.ackDeadline)
	defer cancel()

	resp := cmd.Execute(execCtx, inter)

	d.metrics.RecordInteraction("command", "success", time.Since(start).Seconds())
	log.Debugf("Command handled in %s", time.Since(start))
	return resp
}

// dispatchAutocomplete routes a keystroke event to its registered handler.
// Unknown commands degrade to an empty choice list instead of an error so
// typing keeps working while a stale command definition is registered.
func (d *Dispatcher) dispatchAutocomplete(ctx context.Context, inter *Interaction, start time.Time) Response {
	name := inter.CommandName()

	cmd := d.registry.Get(name)
	if cmd == nil {
		d.metrics.RecordInteraction("autocomplete", "unhandled", time.Since(start).Seconds())
		d.logger.WithModule("bot").WithField("command", name).Warn("No handler registered for autocomplete")
		return JSON(http.StatusOK, discordutil.AutocompleteResult(nil))
	}

	acCtx, cancel := context.WithTimeout(ctxutil.PreserveTracing(ctx), d.ackDeadline)
	defer cancel()

	resp := cmd.Autocomplete(acCtx, inter)

	d.metrics.RecordInteraction("autocomplete", "success", time.Since(start).Seconds())
	return resp
}
