package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func (s *Store) CreateVisit(ctx context.Context, v *domain.HospitalVisit) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO hospital_visits (id, pregnancy_id, date, week, type, notes, weight, blood_pressure, next_visit_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.PregnancyID, v.Date, v.Week, v.Type, v.Notes, v.Weight, v.BloodPressure, v.NextVisitDate, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("create visit: %w", err)
	}
	return nil
}

// ListVisits returns visits newest first. limit <= 0 means no limit.
func (s *Store) ListVisits(ctx context.Context, pregnancyID uuid.UUID, limit int) ([]domain.HospitalVisit, error) {
	q := `SELECT id, pregnancy_id, date, week, type, notes, weight, blood_pressure, next_visit_date, created_at
		FROM hospital_visits WHERE pregnancy_id = $1 ORDER BY date DESC`
	args := []any{pregnancyID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var out []domain.HospitalVisit
	for rows.Next() {
		var v domain.HospitalVisit
		if err := rows.Scan(&v.ID, &v.PregnancyID, &v.Date, &v.Week, &v.Type, &v.Notes, &v.Weight, &v.BloodPressure, &v.NextVisitDate, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) DeleteVisit(ctx context.Context, pregnancyID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM hospital_visits WHERE id = $1 AND pregnancy_id = $2`, id, pregnancyID)
	if err != nil {
		return fmt.Errorf("delete visit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}
