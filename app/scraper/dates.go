package scraper

import (
	"fmt"
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

// The listing page renders publish dates as e.g. "May 11th, 2020 by "
// (full English month name, ordinal day, trailing author marker). The
// pattern is matched strictly so a site layout change fails loudly
// instead of producing garbage dates.
var listingDateRe = regexp.MustCompile(
	`^(January|February|March|April|May|June|July|August|September|October|November|December)` +
		` (\d{1,2})(st|nd|rd|th), (\d{4}) by $`)

// ParseListingDate extracts a date-only UTC timestamp from a listing
// date string. The time of day is midnight; precise times come later
// from the announcement's own detail page.
func ParseListingDate(s string) (time.Time, error) {
	m := listingDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
	}

	// Strip the ordinal suffix and the trailing "by " marker.
	cleaned := fmt.Sprintf("%s %s, %s", m[1], m[2], m[4])
	t, err := dateparse.ParseIn(cleaned, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrDateFormat, s, err)
	}

	return t, nil
}
