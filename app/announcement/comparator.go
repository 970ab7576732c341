package announcement

import (
	"context"
	"fmt"
	"log/slog"
)

// SizeMismatchError is returned when the two compared collections do
// not have equal cardinality. The listing page always shows a fixed
// number of posts, so new announcements are detected purely by key
// absence; unequal sizes mean the comparison inputs are broken, not
// that content changed.
type SizeMismatchError struct {
	Stored int
	Web    int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("cannot compare collections: stored has %d announcements, web has %d", e.Stored, e.Web)
}

// TimestampResolver repairs ambiguous publish timestamps on a fresh
// collection before its keys are compared.
type TimestampResolver interface {
	ResolveSameDayCollisions(ctx context.Context, c *Collection) (*Collection, error)
}

// Comparator reconciles a freshly scraped collection against a stored
// one and classifies the announcements only present on the web side as
// new. The two collections may be passed in either order; they are
// told apart by storage provenance.
type Comparator struct {
	web      *Collection
	stored   *Collection
	resolver TimestampResolver
	fresh    *Collection
}

func NewComparator(a, b *Collection, resolver TimestampResolver) *Comparator {
	web, stored := a, b
	if a.IsFromDB() {
		web, stored = b, a
	}
	return &Comparator{
		web:      web,
		stored:   stored,
		resolver: resolver,
		fresh:    NewCollection(),
	}
}

// Run performs the reconciliation. Same-day ambiguities on the web
// side are resolved first so the derived keys reflect corrected
// timestamps, then every web-side key absent from the stored side is
// classified as new. Nothing is classified on error.
func (c *Comparator) Run(ctx context.Context) error {
	if c.stored.Size() != c.web.Size() {
		return &SizeMismatchError{Stored: c.stored.Size(), Web: c.web.Size()}
	}

	resolved, err := c.resolver.ResolveSameDayCollisions(ctx, c.web)
	if err != nil {
		return fmt.Errorf("failed to resolve same-day announcements: %w", err)
	}
	// Re-key: resolution may have refined publish timestamps, and with
	// them the derived check strings.
	c.web = NewCollection().AddAll(resolved.List())

	c.web.SortByPublishedDesc()
	c.stored.SortByPublishedDesc()

	fresh := NewCollection()
	for _, key := range c.web.Keys() {
		if !c.stored.Contains(key) {
			fresh.Add(c.web.Get(key))
		}
	}
	c.fresh = fresh

	slog.Info("Compared collections", "web", c.web.Size(), "stored", c.stored.Size(), "new", c.fresh.Size())
	return nil
}

// NewAnnouncements returns the announcements classified as new,
// possibly an empty collection.
func (c *Comparator) NewAnnouncements() *Collection {
	return c.fresh
}

func (c *Comparator) HasNew() bool {
	return !c.fresh.IsEmpty()
}
