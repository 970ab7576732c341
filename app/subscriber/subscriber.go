package subscriber

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Subscriber is a person on the notification list. The contact is the
// identity key: a phone number or an email address.
type Subscriber struct {
	ID        string
	Name      string
	Contact   string
	Status    string
	CreatedAt *time.Time
}

func (s *Subscriber) String() string {
	return fmt.Sprintf("name: %s, contact: %s", s.Name, s.Contact)
}

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	// Sri Lankan mobile numbers in international format: 947 followed
	// by a valid operator prefix and seven digits.
	mobileRe = regexp.MustCompile(`^947(0|1|2|5|6|7|8)\d{7}$`)
)

// IsValidContact reports whether a contact string is deliverable at
// all: either an email address or a Sri Lankan mobile number. Channel
// compliance is checked separately by the notification layer.
func IsValidContact(contact string) bool {
	return emailRe.MatchString(contact) || mobileRe.MatchString(contact)
}

// Collection is a set of subscribers keyed by contact, in insertion
// order.
type Collection struct {
	order   []string
	members map[string]*Subscriber
}

func NewCollection() *Collection {
	return &Collection{
		members: make(map[string]*Subscriber),
	}
}

// Add inserts a subscriber under its contact. A duplicate contact
// replaces the earlier entry.
func (c *Collection) Add(s *Subscriber) {
	if _, exists := c.members[s.Contact]; exists {
		slog.Warn("Duplicate subscriber contact, replacing earlier entry", "contact", s.Contact)
	} else {
		c.order = append(c.order, s.Contact)
	}
	c.members[s.Contact] = s
}

func (c *Collection) AddAll(list []*Subscriber) *Collection {
	for _, s := range list {
		c.Add(s)
	}
	return c
}

func (c *Collection) Size() int {
	return len(c.members)
}

func (c *Collection) IsEmpty() bool {
	return c.Size() == 0
}

func (c *Collection) Contains(contact string) bool {
	_, ok := c.members[contact]
	return ok
}

func (c *Collection) Get(contact string) *Subscriber {
	return c.members[contact]
}

// List returns the subscribers in insertion order.
func (c *Collection) List() []*Subscriber {
	list := make([]*Subscriber, 0, len(c.order))
	for _, contact := range c.order {
		list = append(list, c.members[contact])
	}
	return list
}

func (c *Collection) String() string {
	if c.IsEmpty() {
		return "Collection is empty"
	}
	parts := make([]string, 0, len(c.order))
	for _, s := range c.List() {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n")
}
