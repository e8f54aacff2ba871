package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

// UpsertGoogleUser finds or creates the account for a Google identity,
// refreshing email and display name on every sign-in.
func (s *Store) UpsertGoogleUser(ctx context.Context, googleSub, email, name string) (*domain.User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, google_sub, email, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (google_sub)
		DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = now()
		RETURNING id, google_sub, email, name, created_at, updated_at`,
		uuid.New(), googleSub, email, name)

	var u domain.User
	if err := row.Scan(&u.ID, &u.GoogleSub, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, google_sub, email, name, created_at, updated_at
		FROM users WHERE id = $1`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.GoogleSub, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
