// Package discord delivers interaction responses and manages application
// commands through the Discord REST API.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jkassel/checkin-bot-go/internal/ctxutil"
	"github.com/jkassel/checkin-bot-go/internal/discordutil"
	domerrors "github.com/jkassel/checkin-bot-go/internal/errors"
	"github.com/jkassel/checkin-bot-go/internal/logger"
	"github.com/jkassel/checkin-bot-go/internal/metrics"
	"github.com/jkassel/checkin-bot-go/internal/sentry"
)

const apiBase = "https://discord.com/api/v10"

// Config holds Discord client configuration.
type Config struct {
	BotToken        string
	AppID           string
	CallbackTimeout time.Duration
	BaseURL         string // overrides the Discord API base URL, used by tests
	Logger          *logger.Logger
	Metrics         *metrics.Metrics
}

// Client posts interaction responses and registers application commands.
// Callback posts run on background goroutines; Shutdown waits for them.
type Client struct {
	session         *discordgo.Session
	httpClient      *http.Client
	appID           string
	baseURL         string
	callbackTimeout time.Duration
	logger          *logger.Logger
	metrics         *metrics.Metrics
	wg              sync.WaitGroup
}

// NewClient creates a Discord client.
func NewClient(cfg Config) (*Client, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	callbackTimeout := cfg.CallbackTimeout
	if callbackTimeout <= 0 {
		callbackTimeout = 15 * time.Second
	}

	httpClient := &http.Client{
		Timeout: callbackTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	session.Client = httpClient

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = apiBase
	}

	return &Client{
		session:         session,
		httpClient:      httpClient,
		appID:           cfg.AppID,
		baseURL:         baseURL,
		callbackTimeout: callbackTimeout,
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
	}, nil
}

// Respond posts an interaction response to the interaction's callback
// endpoint. The interaction token in the URL authenticates the request, so
// no bot credentials are attached.
func (c *Client) Respond(ctx context.Context, interactionID, interactionToken string, resp discordutil.Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	callbackURL := fmt.Sprintf("%s/interactions/%s/%s/callback", c.baseURL, interactionID, interactionToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callbackURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post callback: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 2048))
		return domerrors.NewAPIError("interactions/callback", httpResp.StatusCode,
			errors.New(strings.TrimSpace(string(body))))
	}
	return nil
}

// RespondAsync delivers the response on a background goroutine so the
// webhook acknowledgment is never delayed by Discord's latency. Tracing
// values survive the handoff; cancellation of the request context does not.
func (c *Client) RespondAsync(ctx context.Context, interactionID, interactionToken string, resp discordutil.Response) {
	detached := ctxutil.PreserveTracing(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("callback delivery panic: %v", r)
				if c.logger != nil {
					c.logger.WithModule("discord").WithInteractionID(interactionID).WithError(err).Error("panic while delivering callback")
				}
				sentry.CaptureException(err)
			}
		}()

		callbackCtx, cancel := context.WithTimeout(detached, c.callbackTimeout)
		defer cancel()

		start := time.Now()
		err := c.Respond(callbackCtx, interactionID, interactionToken, resp)
		duration := time.Since(start).Seconds()

		if err != nil {
			status := "error"
			if errors.Is(err, context.DeadlineExceeded) {
				status = "timeout"
			}
			if c.metrics != nil {
				c.metrics.RecordCallbackPost(status, duration)
			}
			if c.logger != nil {
				c.logger.WithModule("discord").WithInteractionID(interactionID).WithError(err).Error("interaction callback failed")
			}
			sentry.CaptureExceptionWithContext(callbackCtx, err)
			return
		}

		if c.metrics != nil {
			c.metrics.RecordCallbackPost("success", duration)
		}
		if c.logger != nil {
			c.logger.WithModule("discord").WithInteractionID(interactionID).Debug("interaction callback delivered")
		}
	}()
}

// RegisterCommands overwrites the application's commands with the given set.
// A non-empty guildID scopes the commands to that guild, which propagates
// immediately; global commands can take up to an hour to roll out.
func (c *Client) RegisterCommands(ctx context.Context, guildID string, commands []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	created, err := c.session.ApplicationCommandBulkOverwrite(c.appID, guildID, commands, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("bulk overwrite commands: %w", err)
	}
	return created, nil
}

// Shutdown waits for in-flight callback deliveries to finish or the context
// to expire.
func (c *Client) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown wait: %w", ctx.Err())
	}
}
