// Package api is the client's HTTP adapter. Every outgoing request passes
// through a transport that attaches the stored bearer token; every response is
// watched for an unauthorized status so the session can be torn down centrally
// instead of in each caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token attached to outgoing requests.
// Implemented by the durable session storage.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root including the global prefix,
	// e.g. http://localhost:4000/api.
	BaseURL string
	Tokens  TokenSource
	// HTTPClient is optional; a default with a 10s timeout is used when nil.
	HTTPClient *http.Client
}

// Client wraps the HTTP transport with the auth request/response hooks and
// exposes the typed auth operations.
type Client struct {
	baseURL        string
	http           *http.Client
	onUnauthorized func()
}

func New(opts Options) *Client {
	inner := opts.HTTPClient
	if inner == nil {
		inner = &http.Client{Timeout: defaultTimeout}
	}
	next := inner.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	c := &Client{baseURL: strings.TrimRight(opts.BaseURL, "/")}
	c.http = &http.Client{
		Timeout: inner.Timeout,
		Transport: &authTransport{
			next:   next,
			tokens: opts.Tokens,
			client: c,
		},
	}
	return c
}

// SetUnauthorizedHandler registers the forced sign-out hook. Must be called
// before the client is used; the transport invokes it on any 401 that did not
// come from the login endpoint itself.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

type authTransport struct {
	next   http.RoundTripper
	tokens TokenSource
	client *Client
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil {
		token, err := t.tokens.AccessToken(req.Context())
		if err == nil && token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// A 401 from the login call itself is a failed sign-in, not an expired
	// session; forcing a sign-out there would loop the user back to login
	// mid-attempt.
	if resp.StatusCode == http.StatusUnauthorized && !isLoginPath(req.URL.Path) {
		if fn := t.client.onUnauthorized; fn != nil {
			fn()
		}
	}
	return resp, nil
}

func isLoginPath(path string) bool {
	return strings.HasSuffix(path, "/auth/login")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var msg messageResponse
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return "", nil, &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, fmt.Errorf("decode login response: %w", err)
	}
	return out.AccessToken, out.User, nil
}

// Logout notifies the server so it can revoke the token. Callers treat this
// as best-effort; the error is surfaced only for logging.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}
