// Package geocode provides place suggestions and map links backed by the
// Google Maps Platform web APIs.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jkassel/checkin-bot-go/internal/buildinfo"
	domerrors "github.com/jkassel/checkin-bot-go/internal/errors"
	"github.com/jkassel/checkin-bot-go/internal/logger"
	"github.com/jkassel/checkin-bot-go/internal/metrics"
	"github.com/jkassel/checkin-bot-go/internal/sliceutil"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/unicode/norm"
)

const autocompleteEndpoint = "https://maps.googleapis.com/maps/api/place/autocomplete/json"

// MaxSuggestions caps how many predictions Suggest returns.
const MaxSuggestions = 5

// Config holds geocode client configuration.
type Config struct {
	APIKey  string
	Timeout time.Duration
	BaseURL string // overrides the Places Autocomplete endpoint, used by tests
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// Client queries the Places Autocomplete API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a geocode client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = autocompleteEndpoint
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Suggest returns up to MaxSuggestions place descriptions matching input.
// Suggestions are best-effort: failures are logged and reported as an empty
// list, and empty input returns immediately without a network call.
func (c *Client) Suggest(ctx context.Context, input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	start := time.Now()
	suggestions, err := c.fetchPredictions(ctx, norm.NFC.String(input))
	duration := time.Since(start).Seconds()

	if err != nil {
		status := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		if c.metrics != nil {
			c.metrics.RecordGeocodeRequest(status, duration)
		}
		if c.logger != nil {
			c.logger.WithModule("geocode").WithError(err).Warn("autocomplete request failed")
		}
		return nil
	}

	if c.metrics != nil {
		c.metrics.RecordGeocodeRequest("success", duration)
	}
	return suggestions
}

// autocompleteResponse mirrors the fields of the Places Autocomplete reply
// the client reads.
type autocompleteResponse struct {
	Predictions []struct {
		Description string `json:"description"`
	} `json:"predictions"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// fetchPredictions performs one autocomplete request and extracts the
// prediction descriptions.
func (c *Client) fetchPredictions(ctx context.Context, input string) ([]string, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("input", input)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", "checkin-bot/"+buildinfo.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domerrors.NewAPIError("places/autocomplete", resp.StatusCode, errors.New("unexpected status"))
	}

	// Accept-Encoding was set explicitly, so decompression is manual.
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip: %w", err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	var result autocompleteResponse
	if err := json.NewDecoder(reader).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch result.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("autocomplete status %s: %s", result.Status, result.ErrorMessage)
	}

	descriptions := make([]string, 0, len(result.Predictions))
	for _, prediction := range result.Predictions {
		if prediction.Description == "" {
			continue
		}
		descriptions = append(descriptions, prediction.Description)
	}

	// Distinct predictions can share a display text; duplicates would render
	// as identical choices in the picker.
	suggestions := sliceutil.Deduplicate(descriptions, func(d string) string { return d })
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions, nil
}
