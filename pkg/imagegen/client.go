package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// Probe statuses reported to the health aggregator.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusError    = "error"
)

// ProbeResult summarizes one reachability check of an external service.
type ProbeResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Detail    string `json:"detail,omitempty"`
}

// Client talks to the third-party generation services. The browser calls the
// image API directly; the server only builds URLs for it and probes both
// services for the health dashboard.
type Client struct {
	imageBase  string
	textBase   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New constructs a client. The timeout bounds every probe request.
func New(imageBase, textBase string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		imageBase:  strings.TrimRight(imageBase, "/"),
		textBase:   strings.TrimRight(textBase, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "imagegen_client").Logger(),
	}
}

// ImageURL templates a generation URL for the given prompt and parameters,
// matching the contract the frontend uses when calling the API directly.
func (c *Client) ImageURL(prompt string, width, height, seed int, model string) string {
	values := url.Values{}
	if width > 0 {
		values.Set("width", strconv.Itoa(width))
	}
	if height > 0 {
		values.Set("height", strconv.Itoa(height))
	}
	if seed > 0 {
		values.Set("seed", strconv.Itoa(seed))
	}
	if model != "" {
		values.Set("model", model)
	}

	generated := fmt.Sprintf("%s/prompt/%s", c.imageBase, url.PathEscape(prompt))
	if encoded := values.Encode(); encoded != "" {
		generated += "?" + encoded
	}

	return generated
}

// ProbeImage checks the image API by requesting a tiny render and sniffing
// the returned bytes to confirm the service actually produces images.
func (c *Client) ProbeImage(ctx context.Context) ProbeResult {
	target := c.ImageURL("health check", 64, 64, 1, "")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ProbeResult{Status: StatusError, Detail: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return ProbeResult{Status: StatusError, LatencyMS: latency, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return ProbeResult{Status: StatusError, LatencyMS: latency, Detail: resp.Status}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return ProbeResult{Status: StatusDegraded, LatencyMS: latency, Detail: resp.Status}
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		return ProbeResult{Status: StatusDegraded, LatencyMS: latency, Detail: err.Error()}
	}

	if mime := mimetype.Detect(head); !strings.HasPrefix(mime.String(), "image/") {
		c.logger.Warn().Str("mime", mime.String()).Msg("image probe returned non-image payload")
		return ProbeResult{Status: StatusDegraded, LatencyMS: latency, Detail: "non-image payload: " + mime.String()}
	}

	return ProbeResult{Status: StatusHealthy, LatencyMS: latency}
}

// ProbeText checks the text-completion API with a lightweight HEAD request.
func (c *Client) ProbeText(ctx context.Context) ProbeResult {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.textBase+"/", nil)
	if err != nil {
		return ProbeResult{Status: StatusError, Detail: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return ProbeResult{Status: StatusError, LatencyMS: latency, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return ProbeResult{Status: StatusError, LatencyMS: latency, Detail: resp.Status}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return ProbeResult{Status: StatusDegraded, LatencyMS: latency, Detail: resp.Status}
	}

	return ProbeResult{Status: StatusHealthy, LatencyMS: latency}
}
