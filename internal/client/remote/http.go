package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
	"github.com/wayfarer-app/wayfarer/internal/common"
)

// refreshWindow is how close to expiry an access token may get before a
// request proactively refreshes it.
const refreshWindow = time.Minute

// HTTPClient implements Service over the backend's JSON REST surface.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	tokens Tokens
}

// NewHTTPClient returns a client for the backend at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokens installs a token pair, e.g. one restored from a cached session.
func (c *HTTPClient) SetTokens(t Tokens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = t
}

func (c *HTTPClient) currentTokens() Tokens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/v1/health", nil, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return common.ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (models.User, Tokens, error) {
	body := map[string]string{"email": email, "password": password}

	var out struct {
		User   models.User `json:"user"`
		Tokens
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", body, &out, false); err != nil {
		return models.User{}, Tokens{}, err
	}

	c.SetTokens(out.Tokens)
	return out.User, out.Tokens, nil
}

func (c *HTTPClient) CreateTrip(ctx context.Context, payload json.RawMessage) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/trips", payload, &out, true); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) UpdateTrip(ctx context.Context, id string, patch json.RawMessage) error {
	return c.doJSON(ctx, http.MethodPatch, "/v1/trips/"+id, patch, nil, true)
}

func (c *HTTPClient) DeleteTrip(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/trips/"+id, nil, nil, true)
}

// Fetch streams url into dest. The partially written file is removed on any
// failure or non-200 status.
func (c *HTTPClient) Fetch(ctx context.Context, url, dest string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	f, err := os.Create(dest)
	if err != nil {
		return resp.StatusCode, err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return resp.StatusCode, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return resp.StatusCode, err
	}

	return resp.StatusCode, nil
}

// doJSON marshals body (unless it is already raw JSON), performs the request,
// and unmarshals a 2xx response into out when out is non-nil.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var payload []byte
	switch v := body.(type) {
	case nil:
	case json.RawMessage:
		payload = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		payload = b
	}

	resp, err := c.do(ctx, method, path, payload, authed)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode >= 500:
		return common.ErrUnavailable
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
}

// do performs one request. Authenticated requests carry the bearer token,
// refresh it ahead of expiry, and retry once after a 401 the way the
// backend's token rotation expects.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte, authed bool) (*http.Response, error) {
	if authed {
		if t := c.currentTokens(); t.Access != "" && t.Refresh != "" && ExpiringSoon(t.Access, refreshWindow) {
			// best effort; the 401 retry below is the backstop
			_ = c.refresh(ctx)
		}
	}

	resp, err := c.send(ctx, method, path, payload, authed)
	if err != nil {
		return nil, err
	}

	if authed && resp.StatusCode == http.StatusUnauthorized && c.currentTokens().Refresh != "" {
		_ = resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		return c.send(ctx, method, path, payload, authed)
	}

	return resp, nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, authed bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if t := c.currentTokens(); t.Access != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+t.Access)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return resp, nil
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	t := c.currentTokens()
	if t.Refresh == "" {
		return common.ErrUnauthorized
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": t.Refresh})
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, http.MethodPost, "/v1/auth/refresh", payload, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return common.ErrUnauthorized
	}

	var fresh Tokens
	if err := json.NewDecoder(resp.Body).Decode(&fresh); err != nil {
		return err
	}

	c.SetTokens(fresh)
	return nil
}
