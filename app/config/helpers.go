package config

import (
	"fmt"
	"time"
)

// GetFetchDelay returns the delay between detail-page fetches as a
// time.Duration.
func (s *SourceSettings) GetFetchDelay() time.Duration {
	if s.FetchDelay <= 0 {
		return 4 * time.Second
	}
	return time.Duration(s.FetchDelay) * time.Second
}

// GetLocation resolves the source's timezone.
func (i *SourceInfo) GetLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(i.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid source timezone %q: %w", i.Timezone, err)
	}
	return loc, nil
}

// PageAt expands the page URL pattern for a given listing page number.
// Page 1 is the plain listing URL when no pattern is configured.
func (i *SourceInfo) PageAt(page int) string {
	if i.PageURL == "" {
		return i.URL
	}
	return fmt.Sprintf(i.PageURL, page)
}
