package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func (s *Store) CreateBaby(ctx context.Context, b *domain.Baby) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO babies (id, user_id, name, birth_date, birth_weight, birth_height, gender, stage, from_pregnancy_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.UserID, b.Name, b.BirthDate, b.BirthWeight, b.BirthHeight, b.Gender, b.Stage, b.FromPregnancyID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create baby: %w", err)
	}
	return nil
}

func (s *Store) GetBaby(ctx context.Context, id uuid.UUID) (*domain.Baby, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, name, birth_date, birth_weight, birth_height, gender, stage, from_pregnancy_id, created_at, updated_at
		FROM babies WHERE id = $1`, id)

	var b domain.Baby
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.BirthDate, &b.BirthWeight, &b.BirthHeight, &b.Gender, &b.Stage, &b.FromPregnancyID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBabyNotFound
		}
		return nil, fmt.Errorf("get baby: %w", err)
	}
	return &b, nil
}

func (s *Store) ListBabies(ctx context.Context, userID uuid.UUID) ([]domain.Baby, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, birth_date, birth_weight, birth_height, gender, stage, from_pregnancy_id, created_at, updated_at
		FROM babies WHERE user_id = $1 ORDER BY birth_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list babies: %w", err)
	}
	defer rows.Close()

	var out []domain.Baby
	for rows.Next() {
		var b domain.Baby
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.BirthDate, &b.BirthWeight, &b.BirthHeight, &b.Gender, &b.Stage, &b.FromPregnancyID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan baby: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
