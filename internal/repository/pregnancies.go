package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

const pregnancyColumns = `id, user_id, mother_name, due_date, conception_date, current_week,
	baby_name, hospital, doctor_name, doctor_phone, blood_type, status,
	completed_at, transitioned_to_baby_id, created_at, updated_at`

func scanPregnancy(row pgx.Row) (*domain.Pregnancy, error) {
	var p domain.Pregnancy
	err := row.Scan(&p.ID, &p.UserID, &p.MotherName, &p.DueDate, &p.ConceptionDate, &p.CurrentWeek,
		&p.BabyName, &p.Hospital, &p.DoctorName, &p.DoctorPhone, &p.BloodType, &p.Status,
		&p.CompletedAt, &p.TransitionedToBabyID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPregnancyNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreatePregnancy(ctx context.Context, p *domain.Pregnancy) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pregnancies (`+pregnancyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.UserID, p.MotherName, p.DueDate, p.ConceptionDate, p.CurrentWeek,
		p.BabyName, p.Hospital, p.DoctorName, p.DoctorPhone, p.BloodType, p.Status,
		p.CompletedAt, p.TransitionedToBabyID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create pregnancy: %w", err)
	}
	return nil
}

func (s *Store) GetPregnancy(ctx context.Context, id uuid.UUID) (*domain.Pregnancy, error) {
	p, err := scanPregnancy(s.pool.QueryRow(ctx, `
		SELECT `+pregnancyColumns+` FROM pregnancies WHERE id = $1`, id))
	if err != nil && !errors.Is(err, domain.ErrPregnancyNotFound) {
		return nil, fmt.Errorf("get pregnancy: %w", err)
	}
	return p, err
}

func (s *Store) ListPregnancies(ctx context.Context, userID uuid.UUID) ([]domain.Pregnancy, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+pregnancyColumns+` FROM pregnancies
		WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list pregnancies: %w", err)
	}
	defer rows.Close()

	var out []domain.Pregnancy
	for rows.Next() {
		p, err := scanPregnancy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pregnancy: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetActivePregnancy returns the user's single active pregnancy, if any.
func (s *Store) GetActivePregnancy(ctx context.Context, userID uuid.UUID) (*domain.Pregnancy, error) {
	p, err := scanPregnancy(s.pool.QueryRow(ctx, `
		SELECT `+pregnancyColumns+` FROM pregnancies
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC LIMIT 1`, userID))
	if err != nil && !errors.Is(err, domain.ErrPregnancyNotFound) {
		return nil, fmt.Errorf("get active pregnancy: %w", err)
	}
	return p, err
}

func (s *Store) UpdatePregnancy(ctx context.Context, p *domain.Pregnancy) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE pregnancies SET
			mother_name = $2, due_date = $3, conception_date = $4, current_week = $5,
			baby_name = $6, hospital = $7, doctor_name = $8, doctor_phone = $9,
			blood_type = $10, status = $11, completed_at = $12,
			transitioned_to_baby_id = $13, updated_at = now()
		WHERE id = $1`,
		p.ID, p.MotherName, p.DueDate, p.ConceptionDate, p.CurrentWeek,
		p.BabyName, p.Hospital, p.DoctorName, p.DoctorPhone,
		p.BloodType, p.Status, p.CompletedAt, p.TransitionedToBabyID)
	if err != nil {
		return fmt.Errorf("update pregnancy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPregnancyNotFound
	}
	return nil
}
