package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed platform call
type ErrorKind int

const (
	// ErrAuth 会话已失效：401 且无法通过刷新恢复
	ErrAuth ErrorKind = iota + 1
	// ErrClient 其他 4xx，由调用方决定如何提示
	ErrClient
	// ErrServer 5xx，可由用户手动重试
	ErrServer
	// ErrTransport 超时或未收到响应
	ErrTransport
)

// Error is a failed platform call. Status is 0 when no response was
// received; Body carries the raw upstream body when one was.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrAuth:
		return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Message)
	case ErrTransport:
		return fmt.Sprintf("transport error: %s", e.Message)
	default:
		return fmt.Sprintf("platform returned status %d: %s", e.Status, e.Message)
	}
}

// classify maps a non-2xx status to an error kind. 401 handling happens
// before classification, so a 401 reaching here is terminal.
func classify(status int) ErrorKind {
	switch {
	case status == 401:
		return ErrAuth
	case status >= 400 && status < 500:
		return ErrClient
	default:
		return ErrServer
	}
}

// AsError unwraps a gateway error
func AsError(err error) (*Error, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// IsAuth reports whether err is a terminal authentication failure
func IsAuth(err error) bool {
	ge, ok := AsError(err)
	return ok && ge.Kind == ErrAuth
}

// IsTransport reports whether err is a timeout or a missing response
func IsTransport(err error) bool {
	ge, ok := AsError(err)
	return ok && ge.Kind == ErrTransport
}

// UpstreamMessage extracts a human-readable message from a failed call,
// preferring whatever the platform put in its error body.
func UpstreamMessage(err error) string {
	ge, ok := AsError(err)
	if !ok {
		return err.Error()
	}
	if len(ge.Body) > 0 {
		var payload struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(ge.Body, &payload) == nil {
			switch {
			case payload.Message != "":
				return payload.Message
			case payload.Detail != "":
				return payload.Detail
			case payload.Error != "":
				return payload.Error
			}
		}
	}
	return ge.Message
}
