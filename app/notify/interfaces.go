package notify

import (
	"context"

	"github.com/run417/bit-announcement-notifier/app/announcement"
	"github.com/run417/bit-announcement-notifier/app/subscriber"
)

// Formatter turns a collection of announcements into outbound message
// strings, one per announcement.
type Formatter interface {
	Run(c *announcement.Collection) []string
}

// SubscriberFilter keeps only the subscribers reachable on the
// transport's channel.
type SubscriberFilter interface {
	Run(subscribers []*subscriber.Subscriber) []*subscriber.Subscriber
}

// Agent delivers one message to a list of recipients. The boolean is
// the gateway's verdict; the error covers transport failures.
type Agent interface {
	Send(ctx context.Context, message string, recipients []string) (bool, error)
}
