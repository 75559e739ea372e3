package notifier

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// CommandHandler is called when a user command is received.
type CommandHandler func(command string) string

// StartPolling reads one command per line from in and sends each reply.
// Blocks until ctx is cancelled or in is exhausted.
func (c *ConsoleNotifier) StartPolling(ctx context.Context, in io.Reader, handler CommandHandler) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			c.Log.WithError(err).Warn("read command input")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.Log.Info("command polling stopped")
			return
		case line, ok := <-lines:
			if !ok {
				c.Log.Debug("command input closed")
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			c.Log.WithField("command", text).Info("received command")
			if reply := handler(text); reply != "" {
				if err := c.Send(reply); err != nil {
					c.Log.WithError(err).Error("send reply")
				}
			}
		}
	}
}
