package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func (s *Store) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO milestones (id, pregnancy_id, date, week, title, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.PregnancyID, m.Date, m.Week, m.Title, m.Description, m.ImageURL, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create milestone: %w", err)
	}
	return nil
}

// ListMilestones returns milestones newest first. limit <= 0 means no limit.
func (s *Store) ListMilestones(ctx context.Context, pregnancyID uuid.UUID, limit int) ([]domain.Milestone, error) {
	q := `SELECT id, pregnancy_id, date, week, title, description, image_url, created_at
		FROM milestones WHERE pregnancy_id = $1 ORDER BY date DESC`
	args := []any{pregnancyID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	var out []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		if err := rows.Scan(&m.ID, &m.PregnancyID, &m.Date, &m.Week, &m.Title, &m.Description, &m.ImageURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) DeleteMilestone(ctx context.Context, pregnancyID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM milestones WHERE id = $1 AND pregnancy_id = $2`, id, pregnancyID)
	if err != nil {
		return fmt.Errorf("delete milestone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMilestoneNotFound
	}
	return nil
}
