package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
)

func (r *Repository) InsertPublication(publication *domain.Publication) error {
	query := `
		INSERT INTO publications (id, week_number, year, published_by, published_at, changes_log)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	changesLog, err := json.Marshal(publication.ChangesLog)
	if err != nil {
		return err
	}

	args := []any{publication.ID, publication.WeekNumber, publication.Year, publication.PublishedBy, publication.PublishedAt, changesLog}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

// GetPublicationsByWeek 返回某周的发布审计记录，最近的在前
func (r *Repository) GetPublicationsByWeek(week, year int32) ([]*domain.Publication, error) {
	query := `
		SELECT id, published_by, published_at, changes_log
		FROM publications
		WHERE week_number = $1 AND year = $2
		ORDER BY published_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, week, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	publications := make([]*domain.Publication, 0)
	for rows.Next() {
		publication := &domain.Publication{
			WeekNumber: week,
			Year:       year,
		}
		var changesLog []byte
		if err := rows.Scan(&publication.ID, &publication.PublishedBy, &publication.PublishedAt, &changesLog); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(changesLog, &publication.ChangesLog); err != nil {
			return nil, err
		}
		publications = append(publications, publication)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return publications, nil
}
