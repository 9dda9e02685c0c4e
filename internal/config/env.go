package config

// Environment variable names consumed by Load. All application settings use
// the CHECKIN_ prefix so they stay out of the way of AWS and platform tooling.
const (
	// Discord credentials.
	EnvDiscordBotToken  = "CHECKIN_DISCORD_BOT_TOKEN"
	EnvDiscordAppID     = "CHECKIN_DISCORD_APP_ID"
	EnvDiscordPublicKey = "CHECKIN_DISCORD_PUBLIC_KEY"

	// Google Maps Platform credentials.
	EnvGoogleMapsAPIKey = "CHECKIN_GOOGLE_MAPS_API_KEY"

	// Optional AWS Secrets Manager overlay. When an ARN is set, Load fetches
	// the secret and fills any credential field the environment left empty.
	EnvDiscordSecretARN   = "CHECKIN_DISCORD_SECRET_ARN"
	EnvGoogleSecretARN    = "CHECKIN_GOOGLE_SECRET_ARN"
	EnvAWSRegion          = "CHECKIN_AWS_REGION"
	EnvAWSAccessKeyID     = "CHECKIN_AWS_ACCESS_KEY_ID"
	EnvAWSSecretAccessKey = "CHECKIN_AWS_SECRET_ACCESS_KEY"

	// HTTP server.
	EnvPort            = "CHECKIN_PORT"
	EnvLogLevel        = "CHECKIN_LOG_LEVEL"
	EnvShutdownTimeout = "CHECKIN_SHUTDOWN_TIMEOUT"

	// Outbound request budgets.
	EnvGeocodeTimeout  = "CHECKIN_GEOCODE_TIMEOUT"
	EnvCallbackTimeout = "CHECKIN_CALLBACK_TIMEOUT"

	// Metrics endpoint basic auth.
	EnvMetricsAuthEnabled = "CHECKIN_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "CHECKIN_METRICS_USERNAME"
	EnvMetricsPassword    = "CHECKIN_METRICS_PASSWORD"

	// Sentry error reporting.
	EnvSentryDSN         = "CHECKIN_SENTRY_DSN"
	EnvSentryEnvironment = "CHECKIN_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "CHECKIN_SENTRY_SAMPLE_RATE"

	// Better Stack log shipping.
	EnvBetterStackToken    = "CHECKIN_BETTER_STACK_TOKEN"
	EnvBetterStackEndpoint = "CHECKIN_BETTER_STACK_ENDPOINT"
)
