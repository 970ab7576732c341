package notify

import (
	"regexp"

	"github.com/run417/bit-announcement-notifier/app/subscriber"
)

var _ SubscriberFilter = (*TextitFilter)(nil)

// TextitFilter keeps only subscribers the SMS gateway can deliver to:
// Sri Lankan mobile numbers in international format. Email contacts
// are valid subscribers but unreachable on this channel.
type TextitFilter struct {
	mobileRe *regexp.Regexp
}

func NewTextitFilter() *TextitFilter {
	return &TextitFilter{
		mobileRe: regexp.MustCompile(`^947(0|1|2|5|6|7|8)\d{7}$`),
	}
}

func (f *TextitFilter) Run(subscribers []*subscriber.Subscriber) []*subscriber.Subscriber {
	var eligible []*subscriber.Subscriber
	for _, s := range subscribers {
		if f.mobileRe.MatchString(s.Contact) {
			eligible = append(eligible, s)
		}
	}
	return eligible
}
