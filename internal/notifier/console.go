package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Notifier delivers formatted messages to the player.
type Notifier interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// ConsoleNotifier writes messages to a terminal or any other writer.
type ConsoleNotifier struct {
	Out io.Writer
	// Backoff is the first retry delay; it doubles on every attempt.
	Backoff time.Duration
	Log     *logrus.Logger

	mu sync.Mutex
}

func NewConsoleNotifier(out io.Writer, log *logrus.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{Out: out, Backoff: time.Second, Log: log}
}

// Send writes one message followed by a blank line.
func (c *ConsoleNotifier) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.Out, "%s\n\n", text); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (c *ConsoleNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := c.Send(text); err != nil {
			lastErr = err
			backoff := c.Backoff * time.Duration(1<<uint(i))
			c.Log.WithError(err).WithFields(logrus.Fields{
				"attempt": i + 1,
				"of":      maxRetries + 1,
				"backoff": backoff,
			}).Warn("notification failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
