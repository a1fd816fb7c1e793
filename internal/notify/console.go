package notify

import (
	"context"
	"io"
	"sync"
)

// ConsoleNotifier writes the highlighted change block to an operator-facing stream.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleNotifier writes to out, typically os.Stdout.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Name identifies the channel in logs and metrics.
func (c *ConsoleNotifier) Name() string { return "console" }

// Notify writes the highlighted change block.
func (c *ConsoleNotifier) Notify(_ context.Context, event ChangeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.out, "\n"+RenderConsoleBlock(event)+"\n")
	return err
}
