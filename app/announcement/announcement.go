package announcement

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Data carries the raw fields of a single announcement, either freshly
// scraped from the listing page (ID and CheckString empty) or loaded
// from a stored row (both present).
type Data struct {
	ID          string
	Title       string
	URL         string
	CheckString string
	PublishedAt time.Time
	UpdatedAt   *time.Time
	RetrievedAt time.Time
	StoredAt    *time.Time
}

// Announcement is a single announcement post. The listing page carries
// no stable server-side identifier, so announcements are identified by
// a check string derived from the title and the calendar publish date.
type Announcement struct {
	ID          string
	Title       string
	URL         string
	CheckString string
	PublishedAt time.Time
	UpdatedAt   *time.Time
	RetrievedAt time.Time
	StoredAt    *time.Time
}

func New(data Data) *Announcement {
	a := &Announcement{
		ID:          data.ID,
		Title:       data.Title,
		URL:         data.URL,
		CheckString: data.CheckString,
		PublishedAt: data.PublishedAt,
		UpdatedAt:   data.UpdatedAt,
		RetrievedAt: data.RetrievedAt,
		StoredAt:    data.StoredAt,
	}

	if a.CheckString == "" {
		a.CheckString = DeriveCheckString(a.Title, a.PublishedAt)
	}

	return a
}

// IsStored reports whether the announcement was loaded from storage.
func (a *Announcement) IsStored() bool {
	return a.ID != ""
}

// SetPublishedAt replaces the publish timestamp. Fresh announcements
// get their check string re-derived so the identity key reflects the
// corrected timestamp; stored announcements keep the persisted key.
func (a *Announcement) SetPublishedAt(t time.Time) {
	a.PublishedAt = t
	if !a.IsStored() {
		a.CheckString = DeriveCheckString(a.Title, a.PublishedAt)
	}
}

func (a *Announcement) SetUpdatedAt(t time.Time) {
	a.UpdatedAt = &t
}

// DateOnly reports whether the publish timestamp carries no
// time-of-day component, i.e. it came from the coarse listing page and
// has not been refined from the announcement's detail page.
func (a *Announcement) DateOnly() bool {
	h, m, s := a.PublishedAt.Clock()
	return h == 0 && m == 0 && s == 0
}

func (a *Announcement) String() string {
	return fmt.Sprintf("%s %s", a.Title, a.PublishedAt.Format("02-01-2006"))
}

// dayKeyFormat truncates a publish timestamp to its calendar date.
const dayKeyFormat = "02012006"

var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DeriveCheckString builds the identity key for an announcement:
// the title lowercased, folded to remove diacritics, stripped of all
// non-alphanumeric characters, with the publish date appended as
// DDMMYYYY. Two announcements with the same title text and calendar
// publish date collide to the same key regardless of source.
func DeriveCheckString(title string, publishedAt time.Time) string {
	folded, _, err := transform.String(foldTransformer, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	b.WriteString(publishedAt.Format(dayKeyFormat))

	return b.String()
}
