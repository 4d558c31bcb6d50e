package notify

import "context"

// Notifier pushes human-readable trade events to an external channel.
// Delivery is best-effort: failures are logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Notify(context.Context, string) {}
