package scraper

import "errors"

// Error kinds surfaced by the fetch/parse layer. Every failure aborts
// the current run; callers distinguish kinds to report them
// differently, not to recover.
var (
	// ErrFetch covers transport failures and non-2xx responses.
	ErrFetch = errors.New("fetch failed")
	// ErrStructureMismatch means the expected HTML shape is absent.
	ErrStructureMismatch = errors.New("html structure mismatch")
	// ErrDateFormat means a listing date string could not be parsed.
	ErrDateFormat = errors.New("date string format mismatch")
	// ErrTimestampFormat means a detail-page timestamp is not a valid
	// ISO 8601 datetime with offset.
	ErrTimestampFormat = errors.New("timestamp format mismatch")
	// ErrContentInvalid means a scraped title or URL failed its sanity
	// pattern.
	ErrContentInvalid = errors.New("announcement content invalid")
)
