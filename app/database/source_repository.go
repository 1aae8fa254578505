package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ SourceRepository = (*sourceRepository)(nil)

// sourceRepository tracks registered sources and their fetch schedule.
type sourceRepository struct {
	db *DB
}

func NewSourceRepository(db *DB) SourceRepository {
	return &sourceRepository{db: db}
}

func (r *sourceRepository) GetSource(sourceName string) (*Source, error) {
	var source Source
	err := r.db.QueryRow(`
		SELECT id, name, kind, url, last_fetched_at, next_fetch_at, created_at, updated_at
		FROM sources
		WHERE name = ?
	`, sourceName).Scan(
		&source.ID, &source.Name, &source.Kind, &source.URL,
		&source.LastFetchedAt, &source.NextFetchAt, &source.CreatedAt, &source.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get source: %w", err)
	}

	return &source, nil
}

func (r *sourceRepository) GetSourceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sources").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}

// UpsertSource registers a source or refreshes its kind and URL when
// the configuration changed.
func (r *sourceRepository) UpsertSource(sourceName, kind, url string) error {
	existing, err := r.GetSource(sourceName)
	if err != nil {
		return fmt.Errorf("failed to check existing source: %w", err)
	}

	if existing != nil {
		_, err = r.db.Exec(`
			UPDATE sources
			SET kind = ?, url = ?, updated_at = CURRENT_TIMESTAMP
			WHERE name = ?
		`, kind, url, sourceName)
	} else {
		_, err = r.db.Exec(`
			INSERT INTO sources (name, kind, url)
			VALUES (?, ?, ?)
		`, sourceName, kind, url)
	}

	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

func (r *sourceRepository) UpdateFetchSchedule(sourceName string, nextFetch time.Time) error {
	_, err := r.db.Exec(`
		UPDATE sources
		SET next_fetch_at = ?, last_fetched_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, nextFetch, time.Now().UTC(), sourceName)

	if err != nil {
		return fmt.Errorf("failed to update fetch schedule: %w", err)
	}

	return nil
}
