package workforce

import (
	"context"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// NOTIFIER - Fire-and-forget delivery to workers and approvers
// =============================================================================

// Notifier delivers a short message with a deep link to a recipient.
// Delivery is best-effort: the engine logs failures and continues, and a
// failed notification never rolls back the operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, recipientID, message, link string) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// Used in development and as the default when no push channel is wired.
type LogNotifier struct {
	Log *logrus.Logger
}

func (n *LogNotifier) Notify(_ context.Context, recipientID, message, link string) error {
	n.Log.WithFields(logrus.Fields{
		"recipient": recipientID,
		"link":      link,
	}).Info(message)
	return nil
}

// NopNotifier discards notifications. Used in tests that don't assert on them.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string, string) error { return nil }
