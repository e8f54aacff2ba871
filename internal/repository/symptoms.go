package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func (s *Store) CreateSymptom(ctx context.Context, sym *domain.Symptom) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO symptoms (id, pregnancy_id, date, week, type, severity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sym.ID, sym.PregnancyID, sym.Date, sym.Week, sym.Type, sym.Severity, sym.Notes, sym.CreatedAt)
	if err != nil {
		return fmt.Errorf("create symptom: %w", err)
	}
	return nil
}

// ListSymptoms returns symptoms newest first. limit <= 0 means no limit.
func (s *Store) ListSymptoms(ctx context.Context, pregnancyID uuid.UUID, limit int) ([]domain.Symptom, error) {
	q := `SELECT id, pregnancy_id, date, week, type, severity, notes, created_at
		FROM symptoms WHERE pregnancy_id = $1 ORDER BY date DESC`
	args := []any{pregnancyID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list symptoms: %w", err)
	}
	defer rows.Close()

	var out []domain.Symptom
	for rows.Next() {
		var sym domain.Symptom
		if err := rows.Scan(&sym.ID, &sym.PregnancyID, &sym.Date, &sym.Week, &sym.Type, &sym.Severity, &sym.Notes, &sym.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan symptom: %w", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSymptom(ctx context.Context, pregnancyID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM symptoms WHERE id = $1 AND pregnancy_id = $2`, id, pregnancyID)
	if err != nil {
		return fmt.Errorf("delete symptom: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSymptomNotFound
	}
	return nil
}
