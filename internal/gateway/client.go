package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/stq-dashboard-go/internal/session"
)

// DefaultTimeout 平台请求的默认超时预算
const DefaultTimeout = 120 * time.Second

// Request is one outbound platform call
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        interface{}   // JSON-marshaled when non-nil and Raw is empty
	Raw         []byte        // pre-encoded body, e.g. multipart uploads
	ContentType string        // required with Raw; JSON otherwise
	Timeout     time.Duration // per-call override of the default budget

	retried bool // 每个请求最多经历一次刷新重放
}

// Response is the result of a successful (2xx) platform call
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON unmarshals the response body
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Client wraps every outbound platform call with authentication and a
// bounded recovery protocol: attach the stored bearer token, and on a
// 401 refresh the session once and replay the original request.
type Client struct {
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	store     session.Store
	refresher *Refresher
	onExpired func()
}

// NewClient creates a gateway client. The credential store is injected so
// tests can substitute an in-memory double.
func NewClient(baseURL string, store session.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{},
		timeout:   timeout,
		store:     store,
		refresher: NewRefresher(baseURL, timeout),
	}
}

// OnSessionExpired registers the teardown hook fired when a session can
// no longer be recovered. The dashboard surface uses it to force the
// browser back to the login page.
func (c *Client) OnSessionExpired(fn func()) {
	c.onExpired = fn
}

// Store returns the injected credential store
func (c *Client) Store() session.Store {
	return c.store
}

// Do dispatches a platform request through the interception pipeline
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	return c.dispatch(ctx, req, uuid.NewString())
}

func (c *Client) dispatch(ctx context.Context, req *Request, requestID string) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.build(attemptCtx, req, requestID)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: ErrTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrTransport, Message: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.retried {
		return c.recover(ctx, req, requestID, body)
	}

	return nil, &Error{
		Kind:    classify(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
		Body:    body,
	}
}

// build assembles the outbound http.Request, attaching the bearer token
// when one is stored. Requests without a token still dispatch; login,
// register and refresh are legal unauthenticated calls.
func (c *Client) build(ctx context.Context, req *Request, requestID string) (*http.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := "application/json"
	switch {
	case len(req.Raw) > 0:
		body = bytes.NewReader(req.Raw)
		if req.ContentType != "" {
			contentType = req.ContentType
		}
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	if sess := c.store.Get(); sess.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	return httpReq, nil
}

// recover handles a first 401: refresh the access token and replay the
// original request exactly once. Any failure on this path tears the
// session down and surfaces a terminal auth error.
func (c *Client) recover(ctx context.Context, req *Request, requestID string, body []byte) (*Response, error) {
	sess := c.store.Get()
	if sess.RefreshToken == "" {
		log.Printf("[gateway] %s %s %s: 401 with no refresh token, session torn down", requestID, req.Method, req.Path)
		c.teardown()
		return nil, &Error{Kind: ErrAuth, Status: http.StatusUnauthorized, Message: "session expired", Body: body}
	}

	log.Printf("[gateway] %s %s %s: 401, attempting token refresh", requestID, req.Method, req.Path)
	access, err := c.refresher.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		log.Printf("[gateway] %s token refresh failed: %v", requestID, err)
		c.teardown()
		return nil, &Error{Kind: ErrAuth, Status: http.StatusUnauthorized, Message: "session expired", Body: body}
	}

	if err := c.store.Set(access, ""); err != nil {
		// 持久化失败不阻塞重放，下一次请求仍可重新刷新
		log.Printf("[gateway] %s failed to persist refreshed token: %v", requestID, err)
	}

	req.retried = true
	return c.dispatch(ctx, req, requestID)
}

// teardown clears the session and fires the expiry hook once
func (c *Client) teardown() {
	if err := c.store.Clear(); err != nil {
		log.Printf("[gateway] failed to clear credentials: %v", err)
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}

// GetJSON issues a GET and decodes the JSON response into out (may be nil)
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: in})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}

// PutJSON issues a PUT with a JSON body and decodes the response into out
func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: in})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}

// Delete issues a DELETE, ignoring the response body
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
	return err
}
