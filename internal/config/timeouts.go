package config

import "time"

// Timeout constants for HTTP servers and outbound calls. These are fixed
// rather than configurable because they encode protocol constraints (the
// Discord interaction deadline) and operational defaults that rarely need
// per-deployment tuning. The geocode, callback, and shutdown budgets are the
// exceptions and can be overridden through the environment.
const (
	// WebhookReadTimeout bounds how long the server waits for a complete
	// interaction request. Discord retries failed deliveries, so a stuck
	// read is better cut short.
	WebhookReadTimeout = 10 * time.Second

	// WebhookWriteTimeout bounds response writes. Interaction replies are
	// small JSON bodies, so anything slower indicates a dead peer.
	WebhookWriteTimeout = 15 * time.Second

	// WebhookIdleTimeout closes keep-alive connections that Discord has
	// abandoned between deliveries.
	WebhookIdleTimeout = 120 * time.Second

	// InteractionAckDeadline is Discord's hard limit: the webhook must
	// acknowledge an interaction within three seconds or Discord shows the
	// user a failure. Handler work beyond the acknowledgment runs async.
	InteractionAckDeadline = 3 * time.Second

	// DefaultGeocodeTimeout bounds a single Places Autocomplete request.
	// Suggestions feed a live typeahead, so slow answers are worthless.
	DefaultGeocodeTimeout = 5 * time.Second

	// DefaultCallbackTimeout bounds the deferred POST that delivers the
	// check-in reply to Discord's interaction callback endpoint.
	DefaultCallbackTimeout = 15 * time.Second

	// DefaultShutdownTimeout is how long graceful shutdown waits for the
	// HTTP server to drain and for in-flight callback posts to finish.
	DefaultShutdownTimeout = 30 * time.Second

	// SentryFlushTimeout bounds the final flush of buffered error reports
	// during shutdown.
	SentryFlushTimeout = 2 * time.Second

	// SecretsFetchTimeout bounds the startup round trip to AWS Secrets
	// Manager when a secret ARN is configured.
	SecretsFetchTimeout = 10 * time.Second

	// HealthProbeTimeout bounds the container health check's request to
	// the liveness endpoint.
	HealthProbeTimeout = 8 * time.Second

	// CommandRegistrationTimeout bounds the registrar's calls to the
	// Discord application commands API.
	CommandRegistrationTimeout = 30 * time.Second
)
