package notify

import (
	"fmt"

	"github.com/run417/bit-announcement-notifier/app/announcement"
)

var _ Formatter = (*TextitFormatter)(nil)

// TextitFormatter renders announcements as SMS bodies for the Textit
// gateway. %0a is the gateway's line break.
type TextitFormatter struct{}

func NewTextitFormatter() *TextitFormatter {
	return &TextitFormatter{}
}

func (f *TextitFormatter) Run(c *announcement.Collection) []string {
	messages := make([]string, 0, c.Size())
	for _, a := range c.List() {
		message := fmt.Sprintf("BIT Announcement:%%0a%s -%%0a%s %%0aPublished on %s",
			a.Title, a.URL, a.PublishedAt.Format("02-Jan-2006, 03:04 PM"))
		messages = append(messages, message)
	}
	return messages
}
