// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jkassel/checkin-bot-go/internal/bot"
	"github.com/jkassel/checkin-bot-go/internal/buildinfo"
	"github.com/jkassel/checkin-bot-go/internal/config"
	"github.com/jkassel/checkin-bot-go/internal/ctxutil"
	"github.com/jkassel/checkin-bot-go/internal/discord"
	"github.com/jkassel/checkin-bot-go/internal/geocode"
	"github.com/jkassel/checkin-bot-go/internal/logger"
	"github.com/jkassel/checkin-bot-go/internal/metrics"
	"github.com/jkassel/checkin-bot-go/internal/modules/checkin"
	"github.com/jkassel/checkin-bot-go/internal/sentry"
	"github.com/jkassel/checkin-bot-go/internal/webhook"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const repoURL = "https://github.com/jkassel/checkin-bot-go"

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	geocodeClient  *geocode.Client
	discordClient  *discord.Client
	webhookHandler *webhook.Handler
	server         *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "checkin-bot-go")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Set as default logger to enable context value extraction (requestID,
	// interactionID, userID) via ContextHandler in package-level slog calls.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	geocodeClient := geocode.NewClient(geocode.Config{
		APIKey:  cfg.GoogleMapsAPIKey,
		Timeout: cfg.GeocodeTimeout,
		Logger:  log,
		Metrics: m,
	})

	discordClient, err := discord.NewClient(discord.Config{
		BotToken:        cfg.DiscordBotToken,
		AppID:           cfg.DiscordAppID,
		CallbackTimeout: cfg.CallbackTimeout,
		Logger:          log,
		Metrics:         m,
	})
	if err != nil {
		return nil, fmt.Errorf("discord client: %w", err)
	}

	botRegistry := bot.NewRegistry()
	botRegistry.Register(checkin.NewHandler(geocodeClient, discordClient, log))

	dispatcher := bot.NewDispatcher(bot.DispatcherConfig{
		Registry: botRegistry,
		Logger:   log,
		Metrics:  m,
	})

	webhookHandler, err := webhook.NewHandler(webhook.HandlerConfig{
		PublicKey:  cfg.DiscordPublicKey,
		Dispatcher: dispatcher,
		Metrics:    m,
		Logger:     log,
	})
	if err != nil {
		return nil, fmt.Errorf("webhook: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	app := &Application{
		cfg:            cfg,
		logger:         log,
		metrics:        m,
		registry:       registry,
		geocodeClient:  geocodeClient,
		discordClient:  discordClient,
		webhookHandler: webhookHandler,
	}

	router.GET("/", app.redirectToRepo)
	router.GET("/livez", app.livenessCheck)
	router.HEAD("/livez", app.livenessCheck)
	router.GET("/readyz", app.readinessCheck)
	router.HEAD("/readyz", app.readinessCheck)
	router.POST("/webhook", webhookHandler.Handle)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsAuthEnabled, cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.WebhookReadTimeout,
		ReadTimeout:       config.WebhookReadTimeout,
		WriteTimeout:      config.WebhookWriteTimeout,
		IdleTimeout:       config.WebhookIdleTimeout,
	}

	log.Info("Initialization complete")
	return app, nil
}

func (a *Application) redirectToRepo(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, repoURL)
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"suggestions":    a.cfg.GoogleMapsAPIKey != "",
		"sentry":         sentry.IsEnabled(),
		"remote_logging": a.cfg.BetterStackToken != "",
	}
}

// readinessCheck reports ready as soon as initialization completed. The
// pipeline keeps no state, so there is nothing to warm up or ping.
func (a *Application) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"features": a.getFeatures(),
		"build": gin.H{
			"version":    buildinfo.Version,
			"commit":     buildinfo.Commit,
			"build_date": buildinfo.BuildDate,
		},
	})
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
//
// Graceful shutdown sequence:
//  1. Stop accepting new HTTP requests, drain in-flight ones
//  2. Wait for queued interaction callback posts to reach Discord
//  3. Flush error reports and remote logs
func (a *Application) Run() error {
	a.startHTTPServer()

	sig := a.waitForShutdownSignal()
	a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")

	return a.shutdown()
}

// startHTTPServer starts the HTTP server in a goroutine.
func (a *Application) startHTTPServer() {
	go func() {
		a.logger.WithField("port", a.cfg.Port).
			WithField("version", buildinfo.Version).
			Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("HTTP server error")
		}
	}()
}

// waitForShutdownSignal blocks until SIGINT/SIGTERM is received.
func (a *Application) waitForShutdownSignal() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

// shutdown stops the HTTP server, waits for callback deliveries already in
// flight, and flushes the error and log pipelines.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	a.logger.Info("Waiting for callback deliveries to complete...")
	if err := a.discordClient.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("Callback delivery drain timed out")
	}

	if sentry.IsEnabled() && !sentry.Flush(config.SentryFlushTimeout) {
		a.logger.Warn("Sentry flush timed out")
	}

	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("Logger shutdown timed out")
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests with status-based log levels:
// 5xx=Error, 4xx=Warn, 404=Debug, 3xx/2xx=Debug. Every request gets a
// request ID, propagated from the inbound headers or freshly generated, so
// all records for one delivery can be correlated.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = c.GetHeader("X-Correlation-Id")
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		entry := log.WithField("http_method", method).
			WithField("http_path", path).
			WithField("http_status", status).
			WithField("duration_ms", duration.Milliseconds()).
			WithField("client_ip", c.ClientIP()).
			WithRequestID(requestID)

		if status >= 500 {
			entry.Error("HTTP request failed")
		} else if status >= 400 && status != 404 {
			entry.Warn("HTTP request rejected")
		} else if status == 404 {
			entry.Debug("HTTP request not found")
		} else {
			entry.Debug("HTTP request completed")
		}
	}
}
