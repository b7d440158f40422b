package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/model"
)

const maxHeadlineLength = 500

const (
	retryAttempts = 3
	retryDelay    = time.Second
)

// NewsRepository owns the persisted headline window. Ingest is not atomic
// across dedup, insert and trim; a racing duplicate self-corrects on the next
// count-based trim.
type NewsRepository struct {
	db    *sql.DB
	delay time.Duration
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db, delay: retryDelay}
}

// Ingest sanitizes and stores drafts, skipping any whose sanitized headline
// already exists, then trims the window down to the keepCount most recent
// records. Returns how many rows were inserted and deleted.
func (r *NewsRepository) Ingest(ctx context.Context, drafts []model.NewsDraft, keepCount int) (int, int, error) {
	if keepCount < 0 {
		keepCount = 0
	}

	var inserted int
	for _, d := range drafts {
		headline := SanitizeHeadline(d.Headline)
		if headline == "" {
			continue
		}

		publishedAt := d.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = time.Now()
		}

		var ok bool
		err := r.withRetry(func() error {
			var id int64
			e := r.db.QueryRowContext(ctx, `
				INSERT INTO news_record(headline, url, source, published_at)
				VALUES($1, $2, $3, $4)
				ON CONFLICT (headline) DO NOTHING
				RETURNING id
			`, headline, d.URL, d.Source, publishedAt).Scan(&id)

			if e == sql.ErrNoRows {
				ok = false
				return nil
			}
			ok = e == nil
			return e
		})
		if err != nil {
			return inserted, 0, fmt.Errorf("ingest insert: %w", err)
		}
		if ok {
			inserted++
		}
	}

	var deleted int
	err := r.withRetry(func() error {
		res, e := r.db.ExecContext(ctx, `
			DELETE FROM news_record
			WHERE id NOT IN (
				SELECT id FROM news_record
				ORDER BY created_at DESC, id DESC
				LIMIT $1
			)
		`, keepCount)
		if e != nil {
			return e
		}
		n, e := res.RowsAffected()
		if e != nil {
			return e
		}
		deleted = int(n)
		return nil
	})
	if err != nil {
		return inserted, deleted, fmt.Errorf("ingest cleanup: %w", err)
	}

	return inserted, deleted, nil
}

// GetLatest returns up to limit records, newest first. A non-positive limit
// yields an empty result, not an error.
func (r *NewsRepository) GetLatest(ctx context.Context, limit int) ([]model.NewsRecord, error) {
	if limit <= 0 {
		return []model.NewsRecord{}, nil
	}

	var records []model.NewsRecord
	err := r.withRetry(func() error {
		rows, e := r.db.QueryContext(ctx, `
			SELECT id, headline, url, source, published_at, created_at
			FROM news_record
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`, limit)
		if e != nil {
			return e
		}
		defer rows.Close()

		records = records[:0]
		for rows.Next() {
			var rec model.NewsRecord
			if e := rows.Scan(&rec.ID, &rec.Headline, &rec.URL, &rec.Source, &rec.PublishedAt, &rec.CreatedAt); e != nil {
				return e
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get latest: %w", err)
	}

	return records, nil
}

// Count reports the number of live records.
func (r *NewsRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.withRetry(func() error {
		return r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_record`).Scan(&total)
	})
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}

// HealthCheck is a lightweight existence probe against the store.
func (r *NewsRepository) HealthCheck(ctx context.Context) bool {
	var one int
	return r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one) == nil
}

func (r *NewsRepository) withRetry(op func() error) error {
	return withRetry(retryAttempts, r.delay, op)
}

func withRetry(attempts int, delay time.Duration, op func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt < attempts {
			slog.Warn("store operation failed, retrying", "attempt", attempt, "error", err)
			time.Sleep(delay)
		}
	}
	return err
}

// SanitizeHeadline trims, collapses internal whitespace and caps a headline
// at maxHeadlineLength characters. The cap counts runes, never splitting a
// multibyte character, since Postgres rejects invalid UTF-8 outright. Dedup
// compares these sanitized forms exactly.
func SanitizeHeadline(headline string) string {
	clean := strings.Join(strings.Fields(headline), " ")
	if utf8.RuneCountInString(clean) > maxHeadlineLength {
		runes := []rune(clean)
		clean = strings.TrimSpace(string(runes[:maxHeadlineLength]))
	}
	return clean
}
