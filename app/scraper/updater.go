package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/run417/bit-announcement-notifier/app/announcement"
)

// DocumentFetcher is the capability the updater needs from the HTTP
// layer.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Updater repairs the coarse publish timestamps scraped from the
// listing page by visiting each announcement's own detail page, which
// carries precise ISO timestamps. Precision costs one fetch per
// announcement, so it is purchased lazily: only same-day collisions
// during comparison, and everything only for confirmed-new items.
type Updater struct {
	fetcher DocumentFetcher
	scraper *Scraper
	loc     *time.Location
	delay   time.Duration
	sleep   func(time.Duration)
}

func NewUpdater(fetcher DocumentFetcher, scraper *Scraper, loc *time.Location, delay time.Duration) *Updater {
	return &Updater{
		fetcher: fetcher,
		scraper: scraper,
		loc:     loc,
		delay:   delay,
		sleep:   time.Sleep,
	}
}

// ResolveSameDayCollisions overwrites the publish timestamp of every
// member of a same-day group with the precise timestamp from its
// detail page. Members not in a colliding group keep their date-only
// value. Stored collections are returned untouched; their timestamps
// are already final.
func (u *Updater) ResolveSameDayCollisions(ctx context.Context, c *announcement.Collection) (*announcement.Collection, error) {
	for _, group := range c.SameDayGroups() {
		for _, a := range group {
			slog.Info("Resolving publish time of same-day announcement", "url", a.URL)
			publishedAt, err := u.fetchTimestamp(ctx, a.URL, FieldPublished)
			if err != nil {
				return nil, err
			}
			a.SetPublishedAt(publishedAt)
		}
	}
	return c, nil
}

// RefreshAllTimestamps sets the authoritative published and updated
// timestamps of every member from its detail page. One fetch per
// announcement, strictly sequential, with a fixed delay between
// requests so the source site is not hammered. A fetch failure aborts
// the whole batch; there is no retry.
func (u *Updater) RefreshAllTimestamps(ctx context.Context, c *announcement.Collection) error {
	for _, a := range c.List() {
		page, err := u.fetcher.Fetch(ctx, a.URL)
		if err != nil {
			return err
		}

		publishedAt, err := u.scraper.ParseDetailTimestamp(page, FieldPublished, u.loc)
		if err != nil {
			return fmt.Errorf("failed to refresh published time of %s: %w", a.URL, err)
		}
		a.SetPublishedAt(publishedAt)

		updatedAt, err := u.scraper.ParseDetailTimestamp(page, FieldUpdated, u.loc)
		if err != nil {
			return fmt.Errorf("failed to refresh updated time of %s: %w", a.URL, err)
		}
		a.SetUpdatedAt(updatedAt)

		slog.Info("Refreshed announcement timestamps", "url", a.URL, "delay", u.delay.String())
		u.sleep(u.delay)
	}
	return nil
}

func (u *Updater) fetchTimestamp(ctx context.Context, url, field string) (time.Time, error) {
	page, err := u.fetcher.Fetch(ctx, url)
	if err != nil {
		return time.Time{}, err
	}
	t, err := u.scraper.ParseDetailTimestamp(page, field, u.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to extract %s time of %s: %w", field, url, err)
	}
	return t, nil
}
