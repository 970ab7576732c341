package scraper

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/run417/bit-announcement-notifier/app/announcement"
)

// Timestamp fields exposed on an announcement's detail page.
const (
	FieldPublished = "published"
	FieldUpdated   = "updated"
)

var urlRe = regexp.MustCompile(`(?i)^https?://[a-z0-9@:%._+~#=-]{1,256}\.[a-z]{2,6}\b[-a-z0-9@:%_+.~#?&/=]*$`)

// Detail pages carry ISO 8601 timestamps with a numeric offset, e.g.
// "2020-05-11T14:05:00+05:30". Anything else is rejected.
var isoOffsetRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[+-]\d{2}:\d{2}$`)

// Scraper extracts announcement data from the site's HTML. The
// listing page is a single container element holding one h4 title
// (with the link) followed by a strong element with the human date for
// each post.
type Scraper struct {
	container string
}

// NewScraper creates a scraper targeting the given container
// selector, e.g. "article#post-6".
func NewScraper(container string) *Scraper {
	return &Scraper{container: container}
}

// ParseListing extracts the announcement fields from a listing page.
// The returned records carry a date-only publish timestamp and no
// identity; check strings are derived at construction time.
func (s *Scraper) ParseListing(data []byte, retrievedAt time.Time) ([]announcement.Data, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructureMismatch, err)
	}

	container := doc.Find(s.container).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: container %q not found", ErrStructureMismatch, s.container)
	}

	var list []announcement.Data
	var parseErr error
	container.ChildrenFiltered("h4").EachWithBreak(func(_ int, title *goquery.Selection) bool {
		record, err := s.parsePost(title, retrievedAt)
		if err != nil {
			parseErr = err
			return false
		}
		list = append(list, record)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no announcement posts inside %q", ErrStructureMismatch, s.container)
	}

	slog.Info("Parsed announcement listing", "count", len(list))
	return list, nil
}

func (s *Scraper) parsePost(title *goquery.Selection, retrievedAt time.Time) (announcement.Data, error) {
	anchors := title.ChildrenFiltered("a")
	if anchors.Length() != 1 {
		return announcement.Data{}, fmt.Errorf("%w: title element must contain exactly one anchor, found %d", ErrStructureMismatch, anchors.Length())
	}

	href, ok := anchors.Attr("href")
	if !ok {
		return announcement.Data{}, fmt.Errorf("%w: title anchor has no href attribute", ErrStructureMismatch)
	}

	dateWrapper := title.Next()
	if !dateWrapper.Is("strong") {
		return announcement.Data{}, fmt.Errorf("%w: date wrapper after title is not a strong element", ErrStructureMismatch)
	}

	publishedAt, err := ParseListingDate(dateWrapper.Text())
	if err != nil {
		return announcement.Data{}, err
	}

	record := announcement.Data{
		Title:       strings.TrimSpace(anchors.Text()),
		URL:         href,
		PublishedAt: publishedAt,
		RetrievedAt: retrievedAt,
	}

	if err := checkContentValidity(record); err != nil {
		return announcement.Data{}, err
	}

	return record, nil
}

func checkContentValidity(record announcement.Data) error {
	if record.Title == "" {
		return fmt.Errorf("%w: announcement title is empty", ErrContentInvalid)
	}
	if !urlRe.MatchString(record.URL) {
		return fmt.Errorf("%w: announcement URL %q is invalid", ErrContentInvalid, record.URL)
	}
	return nil
}

// ParseDetailTimestamp extracts the published or updated timestamp
// from an announcement's detail page, i.e. the datetime attribute of
// the time element with the given class. The result is converted to
// loc, the source site's local timezone.
func (s *Scraper) ParseDetailTimestamp(data []byte, field string, loc *time.Location) (time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrStructureMismatch, err)
	}

	el := doc.Find("time." + field).First()
	if el.Length() == 0 {
		return time.Time{}, fmt.Errorf("%w: time element with class %q not found", ErrStructureMismatch, field)
	}

	value, ok := el.Attr("datetime")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: time element has no datetime attribute", ErrStructureMismatch)
	}

	if !isoOffsetRe.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %q is not an ISO 8601 datetime with offset", ErrTimestampFormat, value)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrTimestampFormat, value, err)
	}

	return t.In(loc), nil
}
