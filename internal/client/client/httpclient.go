package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/stocksense/internal/client/session"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

const maxBodySize = 1 << 20

// HTTPClient talks to the authentication API over JSON/HTTP.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        logging.Logger
}

// Options overrides HTTPClient dependencies.
type Options struct {
	// HTTPClient is used as is when set; Timeout is ignored then.
	HTTPClient *http.Client
	// Timeout bounds a whole call. Zero leaves only the caller's context.
	Timeout time.Duration
	Logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, opts Options) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base URL is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPClient{baseURL: parsed, httpClient: hc, log: log.With("component", "api")}, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var resp SignupResponse
	if err := c.call(ctx, "Signup", http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	const op = "Login"
	var resp LoginResponse
	if err := c.call(ctx, op, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		return nil, transportError(op, http.StatusOK, msgInvalidResponse, errors.New("empty access token"))
	}
	return &resp, nil
}

// call performs one JSON round trip. out may be nil when the body is ignored.
func (c *HTTPClient) call(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()

	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		c.log.Warn(ctx, "api call failed", "op", op, "method", method, "path", path, "error", err)
		return transportError(op, 0, msgUnreachable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api call", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.log.Warn(ctx, "api response unreadable", "op", op, "status", resp.StatusCode, "error", err)
		return transportError(op, resp.StatusCode, msgUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		e := requestError(op, resp.StatusCode, eb)
		c.log.Warn(ctx, "api request rejected", "op", op, "status", resp.StatusCode, "message", e.Message)
		return e
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.log.Warn(ctx, "api response malformed", "op", op, "status", resp.StatusCode, "error", err)
		return transportError(op, resp.StatusCode, msgInvalidResponse, err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := session.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}
