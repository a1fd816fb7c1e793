package notify

import (
	"context"
	"log/slog"

	"vault-cap-monitor/internal/logfields"
	"vault-cap-monitor/internal/metrics"
)

// Dispatcher fans a change event out to the console and every configured channel.
// Delivery failures are logged and never returned to the caller.
type Dispatcher struct {
	console  Notifier
	channels []Notifier
	recorder metrics.Recorder
}

// NewDispatcher builds a dispatcher. console is always invoked; channels may be empty.
func NewDispatcher(console Notifier, channels ...Notifier) *Dispatcher {
	return &Dispatcher{
		console:  console,
		channels: channels,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder used for delivery outcomes.
func (d *Dispatcher) WithRecorder(r metrics.Recorder) *Dispatcher {
	if r != nil {
		d.recorder = r
	}
	return d
}

// Channels returns the number of remote channels configured.
func (d *Dispatcher) Channels() int { return len(d.channels) }

// Notify logs the event and attempts one delivery per channel.
func (d *Dispatcher) Notify(ctx context.Context, event ChangeEvent) {
	slog.Warn("Deposit cap change detected",
		logfields.EventID(event.ID),
		logfields.OldCap(event.OldCap.String()),
		logfields.NewCap(event.NewCap.String()),
		slog.String("delta", event.Delta.String()),
		slog.String("delta_percent", event.DeltaPercent.StringFixed(2)),
		logfields.TotalAssets(event.TotalAssets.String()),
		logfields.MaxTokenSupply(event.MaxTokenSupply.String()))

	if d.console != nil {
		d.deliver(ctx, d.console, event)
	}
	for _, n := range d.channels {
		d.deliver(ctx, n, event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n Notifier, event ChangeEvent) {
	err := n.Notify(ctx, event)
	d.recorder.IncNotification(n.Name(), err == nil)
	if err != nil {
		slog.Error("Notification failed",
			logfields.Channel(n.Name()),
			logfields.EventID(event.ID),
			logfields.Error(err))
		return
	}
	if n != d.console {
		slog.Info("Notification sent", logfields.Channel(n.Name()), logfields.EventID(event.ID))
	}
}
