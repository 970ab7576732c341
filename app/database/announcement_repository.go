package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/run417/bit-announcement-notifier/app/announcement"
)

// AnnouncementRepository handles database operations for stored
// announcements.
type AnnouncementRepository struct {
	db *DB
}

func NewAnnouncementRepository(db *DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// GetRecent loads the most recently published rows as a collection.
// The limit matches the listing page size so the stored side of a
// comparison has the same cardinality as the web side.
func (r *AnnouncementRepository) GetRecent(limit int) (*announcement.Collection, error) {
	rows, err := r.db.Query(`
		SELECT id, title, url, check_string, published_at, updated_at, retrieved_at, stored_at
		FROM announcements
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent announcements: %w", err)
	}
	defer rows.Close()

	collection := announcement.NewCollection()
	for rows.Next() {
		var (
			id          int64
			title       string
			url         string
			checkString string
			publishedAt time.Time
			updatedAt   sql.NullTime
			retrievedAt time.Time
			storedAt    time.Time
		)
		if err := rows.Scan(&id, &title, &url, &checkString, &publishedAt, &updatedAt, &retrievedAt, &storedAt); err != nil {
			return nil, fmt.Errorf("failed to scan announcement row: %w", err)
		}

		data := announcement.Data{
			ID:          strconv.FormatInt(id, 10),
			Title:       title,
			URL:         url,
			CheckString: checkString,
			PublishedAt: publishedAt,
			RetrievedAt: retrievedAt,
			StoredAt:    &storedAt,
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			data.UpdatedAt = &t
		}
		collection.Add(announcement.New(data))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	slog.Info("Loaded stored announcements", "count", collection.Size(), "limit", limit)
	return collection, nil
}

// SaveAll inserts every member of the collection in one transaction.
// Either the whole batch is stored or none of it is.
func (r *AnnouncementRepository) SaveAll(c *announcement.Collection) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO announcements (title, url, check_string, published_at, updated_at, retrieved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, a := range c.List() {
		var updatedAt interface{}
		if a.UpdatedAt != nil {
			updatedAt = *a.UpdatedAt
		}
		if _, err := stmt.Exec(a.Title, a.URL, a.CheckString, a.PublishedAt, updatedAt, a.RetrievedAt); err != nil {
			return 0, fmt.Errorf("failed to insert announcement %q: %w", a.CheckString, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit announcements: %w", err)
	}

	slog.Info("Stored announcement collection", "count", count)
	return count, nil
}
