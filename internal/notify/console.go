package notify

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ConsoleNotifier prints alert messages to a writer instead of delivering
// them. Used by dry runs so the operator sees what would have been sent.
type ConsoleNotifier struct {
	w io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{w: os.Stdout}
}

// Send writes the message followed by a newline.
func (c *ConsoleNotifier) Send(ctx context.Context, message string) error {
	_, err := fmt.Fprintln(c.w, message)
	return err
}
