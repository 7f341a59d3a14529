package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// refreshPath 固定的令牌刷新端点
const refreshPath = "/api/users/token/refresh/"

// Refresher exchanges a refresh token for a new access token. It performs
// a single network call per invocation and never touches the credential
// store; retry and teardown policy belong to the Client.
//
// Concurrent invocations coalesce into one in-flight network call so that
// parallel 401s cannot race each other on the refresh token.
type Refresher struct {
	baseURL string
	client  *http.Client

	mu       sync.Mutex
	inflight *refreshCall
}

type refreshCall struct {
	done   chan struct{}
	access string
	err    error
}

// NewRefresher creates a refresher against the platform base URL
func NewRefresher(baseURL string, timeout time.Duration) *Refresher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Refresher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Refresh exchanges refreshToken for a new access token. If another
// refresh is already in flight its result is shared with this caller.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (string, error) {
	r.mu.Lock()
	if call := r.inflight; call != nil {
		r.mu.Unlock()
		select {
		case <-call.done:
			return call.access, call.err
		case <-ctx.Done():
			return "", &Error{Kind: ErrTransport, Message: ctx.Err().Error()}
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	r.inflight = call
	r.mu.Unlock()

	call.access, call.err = r.exchange(ctx, refreshToken)

	r.mu.Lock()
	r.inflight = nil
	r.mu.Unlock()
	close(call.done)

	return call.access, call.err
}

// exchange performs the actual network call
func (r *Refresher) exchange(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", &Error{Kind: ErrTransport, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Kind: ErrTransport, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &Error{Kind: ErrTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: ErrTransport, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{Kind: ErrAuth, Status: resp.StatusCode, Message: "token refresh rejected", Body: body}
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Access == "" {
		return "", &Error{Kind: ErrAuth, Status: resp.StatusCode, Message: "malformed refresh response", Body: body}
	}

	return result.Access, nil
}
