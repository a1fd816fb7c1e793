package notify

import "context"

// Notifier delivers events to a downstream integration.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, event ChangeEvent) error
}
