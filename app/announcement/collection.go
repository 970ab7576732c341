package announcement

import (
	"log/slog"
	"sort"
	"strings"
)

// Collection is a set of announcements keyed by check string.
// Insertion order is preserved for deterministic iteration; sorting
// rearranges it.
type Collection struct {
	order []string
	items map[string]*Announcement
}

func NewCollection() *Collection {
	return &Collection{
		items: make(map[string]*Announcement),
	}
}

// Add inserts an announcement under its check string. A duplicate key
// replaces the earlier entry (last write wins).
func (c *Collection) Add(a *Announcement) {
	key := a.CheckString
	if _, exists := c.items[key]; exists {
		slog.Warn("Duplicate check string, replacing earlier entry", "check_string", truncateKey(key))
	} else {
		c.order = append(c.order, key)
	}
	c.items[key] = a
}

// AddAll inserts every announcement in the slice and returns the
// collection for chaining.
func (c *Collection) AddAll(list []*Announcement) *Collection {
	for _, a := range list {
		c.Add(a)
	}
	return c
}

func (c *Collection) Size() int {
	return len(c.items)
}

func (c *Collection) IsEmpty() bool {
	return c.Size() == 0
}

func (c *Collection) Contains(key string) bool {
	_, ok := c.items[key]
	return ok
}

func (c *Collection) Get(key string) *Announcement {
	return c.items[key]
}

// Keys returns the check strings in collection order.
func (c *Collection) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// List returns the announcements in collection order.
func (c *Collection) List() []*Announcement {
	list := make([]*Announcement, 0, len(c.order))
	for _, key := range c.order {
		list = append(list, c.items[key])
	}
	return list
}

// IsFromDB reports whether every member was loaded from storage.
// An empty collection counts as stored by convention.
func (c *Collection) IsFromDB() bool {
	if c.IsEmpty() {
		slog.Warn("Checking storage provenance of an empty collection")
		return true
	}
	for _, a := range c.items {
		if !a.IsStored() {
			return false
		}
	}
	return true
}

// IsUniform reports whether the members are either all stored or all
// fresh, never mixed. Used as a precondition check before comparison.
func (c *Collection) IsUniform() bool {
	stored := 0
	fresh := 0
	for _, a := range c.items {
		if a.IsStored() {
			stored++
		} else {
			fresh++
		}
	}
	return stored == 0 || fresh == 0
}

// SortByPublishedDesc reorders the collection newest first. The sort
// is stable so same-instant announcements keep their insertion order.
func (c *Collection) SortByPublishedDesc() *Collection {
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.items[c.order[i]].PublishedAt.After(c.items[c.order[j]].PublishedAt)
	})
	return c
}

// SameDayGroups returns groups of two or more announcements sharing a
// calendar publish date. Only fresh collections are grouped; stored
// rows are already unique by date and title at write time.
func (c *Collection) SameDayGroups() [][]*Announcement {
	if c.IsFromDB() {
		return nil
	}

	byDay := make(map[string][]*Announcement)
	var dayOrder []string
	for _, key := range c.order {
		a := c.items[key]
		day := a.PublishedAt.Format(dayKeyFormat)
		if _, seen := byDay[day]; !seen {
			dayOrder = append(dayOrder, day)
		}
		byDay[day] = append(byDay[day], a)
	}

	var groups [][]*Announcement
	total := 0
	for _, day := range dayOrder {
		if group := byDay[day]; len(group) > 1 {
			groups = append(groups, group)
			total += len(group)
		}
	}

	slog.Info("Grouped announcements sharing a publish date", "announcements", total, "groups", len(groups))
	return groups
}

func (c *Collection) String() string {
	if c.IsEmpty() {
		return "Collection is empty"
	}
	parts := make([]string, 0, len(c.order))
	for _, a := range c.List() {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, "\n")
}

func truncateKey(key string) string {
	if len(key) > 20 {
		return key[:20] + "..."
	}
	return key
}
