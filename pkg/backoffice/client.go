package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/brisatech/backoffice/pkg/session"
)

// Client is the single point of outbound communication with the back-office
// API. It attaches the bearer token from the session store to every request,
// decodes the uniform response envelope, and translates failures into
// display-ready APIErrors. Resource services hang off the client so those
// concerns apply exactly once per call.
type Client struct {
	cfg     Config
	base    *url.URL
	http    *http.Client
	session session.Store

	// OnUnauthorized runs after any response with status 401 has cleared the
	// session, whichever call triggered it. Consumers typically redirect to
	// their sign-in entry point here. May be nil.
	OnUnauthorized func()

	Auth     *AuthService
	Messages *MessagesService
	Projects *ProjectsService
	Services *ServicesService
	Stack    *StackService
	Settings *SettingsService
}

// NewClient creates a client over the given session store. A nil httpClient
// gets a default with the configured timeout.
func NewClient(cfg Config, store session.Store, httpClient *http.Client) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	base, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		cfg:     cfg,
		base:    base,
		http:    httpClient,
		session: store,
	}
	c.Auth = &AuthService{c: c}
	c.Messages = &MessagesService{c: c}
	c.Projects = &ProjectsService{c: c}
	c.Services = &ServicesService{c: c}
	c.Stack = &StackService{c: c}
	c.Settings = &SettingsService{c: c}

	logger.Info("backoffice: client created",
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("timeout", cfg.Timeout),
	)
	return c, nil
}

// Session exposes the underlying store for consumers that render auth state.
func (c *Client) Session() session.Store {
	return c.session
}

// package-level logger; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by this package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// envelope is the uniform wrapper around every successful API payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// do performs one API call: method and path against the base URL, optional
// query values, optional JSON body, decoding the envelope data into out when
// out is non-nil. All failures come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &APIError{Message: msgUnexpected, Err: fmt.Errorf("encode request: %w", err)}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), &buf)
	if err != nil {
		return &APIError{Message: msgUnexpected, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("backoffice: request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("err", err),
		)
		return connectivityError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectivityError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Global effect: any denied credential ends the session, no matter
		// which call got the 401.
		if cerr := c.session.Clear(); cerr != nil {
			logger.Error("backoffice: clearing session", slog.Any("err", cerr))
		}
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := translateError(resp.StatusCode, raw)
		logger.Debug("backoffice: api error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: msgUnexpected, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: msgUnexpected, Err: fmt.Errorf("decode payload: %w", err)}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
