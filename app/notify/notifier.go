package notify

import (
	"context"
	"log/slog"

	"github.com/run417/bit-announcement-notifier/app/announcement"
	"github.com/run417/bit-announcement-notifier/app/subscriber"
)

// Notifier fans a batch of new announcements out to the subscriber
// list: every formatted message goes to every channel-compliant
// recipient. Individual send failures are logged but do not abort the
// batch, so delivery is at-least-once, never exactly-once.
type Notifier struct {
	announcements *announcement.Collection
	formatter     Formatter
	subscribers   *subscriber.Collection
	filter        SubscriberFilter
	agent         Agent
}

func NewNotifier(a *announcement.Collection, formatter Formatter, s *subscriber.Collection,
	filter SubscriberFilter, agent Agent) *Notifier {
	return &Notifier{
		announcements: a,
		formatter:     formatter,
		subscribers:   s,
		filter:        filter,
		agent:         agent,
	}
}

func (n *Notifier) Notify(ctx context.Context) {
	messages := n.prepareMessages()
	recipients := n.prepareRecipients()

	if len(messages) == 0 || len(recipients) == 0 {
		slog.Warn("Nothing to notify", "messages", len(messages), "recipients", len(recipients))
		return
	}

	slog.Info("Dispatching notifications", "messages", len(messages), "recipients", len(recipients))
	for _, message := range messages {
		sent, err := n.agent.Send(ctx, message, recipients)
		if err != nil {
			slog.Error("Message dispatch failed", "error", err)
			continue
		}
		slog.Info("Message sent", "accepted", sent)
	}
}

func (n *Notifier) prepareMessages() []string {
	return n.formatter.Run(n.announcements)
}

func (n *Notifier) prepareRecipients() []string {
	eligible := n.filter.Run(n.subscribers.List())
	contacts := make([]string, 0, len(eligible))
	for _, s := range eligible {
		contacts = append(contacts, s.Contact)
	}
	return contacts
}
