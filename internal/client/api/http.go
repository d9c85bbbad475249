package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
)

const (
	defaultBaseURL = "http://localhost:3000/api"
	defaultTimeout = 30 * time.Second
	maxBodySize    = 10 << 20
)

// Options configures HTTPClient.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     logging.Logger
}

// HTTPClient talks to the backend over HTTP/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts Options) *HTTPClient {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	var log logging.Logger = logging.Discard()
	if opts.Logger != nil {
		log = opts.Logger
	}
	return &HTTPClient{baseURL: baseURL, http: hc, tokens: opts.Tokens, log: log}
}

// do sends one request and returns the decoded envelope of a 2xx response.
// Non-2xx responses become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return envelope{}, fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return envelope{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.log.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	env, decodeErr := decodeEnvelope(raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr != nil {
			return envelope{}, &APIError{Status: resp.StatusCode, Raw: raw}
		}
		return envelope{}, env.apiError(resp.StatusCode)
	}
	if decodeErr != nil {
		return envelope{}, decodeErr
	}
	if env.failed() {
		return envelope{}, env.apiError(resp.StatusCode)
	}
	return env, nil
}

// decodeInto unmarshals v into out, reporting shape mismatches as ErrProtocol.
func decodeInto(v json.RawMessage, out any) error {
	if err := json.Unmarshal(v, out); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return nil
}
