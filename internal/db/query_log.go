package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lawdesk/internal/models"
)

// InsertQueryLog stores one answered question. A zero ID is replaced with a new one.
func (d *DB) InsertQueryLog(ctx context.Context, entry *models.QueryLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO query_log (id, query, outcome, topic, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.Query, entry.Outcome, entry.Topic, entry.Attempts, entry.CreatedAt)
	return err
}

// GetQueryOutcomeCounts aggregates the query log by topic and outcome for metrics export.
func (d *DB) GetQueryOutcomeCounts(ctx context.Context) ([]models.OutcomeCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT topic, outcome, COUNT(*)
		FROM query_log
		GROUP BY topic, outcome
		ORDER BY topic, outcome
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.OutcomeCount
	for rows.Next() {
		var c models.OutcomeCount
		if err := rows.Scan(&c.Topic, &c.Outcome, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DeleteQueryLogsBefore removes entries older than cutoff and returns how many were deleted.
func (d *DB) DeleteQueryLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM query_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
