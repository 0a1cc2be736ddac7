package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Category tags an outbound message by the subsystem that produced it.
type Category string

const (
	CategoryMerge       Category = "merge"
	CategoryHealthAlert Category = "health-alert"
	CategoryTest        Category = "test"
)

// Notifier delivers one formatted message to the chat channel. Implementations
// must tolerate concurrent callers.
type Notifier interface {
	Send(ctx context.Context, text string, category Category) error
}

// Multi fans a message out to several notifiers and joins their errors.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, text string, category Category) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, text, category))
	}
	return err
}
