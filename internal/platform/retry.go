package platform

import (
	"context"
	"log"
	"time"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
)

// 列表与统计类调用的有限重试参数
const (
	retryAttempts = 3
	retryBackoff  = 2 * time.Second
)

// withRetry runs fn up to retryAttempts times with a fixed backoff,
// retrying only on transport failures. Auth, client and server errors
// surface immediately; retry policy never lives below this layer.
func withRetry(ctx context.Context, label string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = fn()
		if err == nil || !gateway.IsTransport(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		log.Printf("[platform] %s failed (attempt %d/%d): %v", label, attempt, retryAttempts, err)
		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
			return err
		}
	}
	return err
}
