package llm

import (
	"context"
	"errors"
	"log"
	"time"
)

// RetryClient wraps a Client with bounded retry on provider failures.
// Schema errors are not retried here: the parse step is downstream of the
// call, and re-prompting on schema failure is a caller decision.
type RetryClient struct {
	inner    Client
	attempts int
	backoff  time.Duration
}

// WithRetry wraps client with up to attempts tries and a fixed backoff
// between them. Values below 1 attempt are clamped to 1.
func WithRetry(client Client, attempts int, backoff time.Duration) *RetryClient {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryClient{inner: client, attempts: attempts, backoff: backoff}
}

// Invoke calls the wrapped client, retrying provider errors up to the
// configured attempt count.
func (c *RetryClient) Invoke(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		out, err := c.inner.Invoke(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			return "", err
		}
		if attempt == c.attempts {
			break
		}

		log.Printf("[llm] attempt %d/%d failed: %v, retrying", attempt, c.attempts, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.backoff):
		}
	}
	return "", lastErr
}

var _ Client = (*RetryClient)(nil)
