package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
	"github.com/newlifejournal/newlifejournal/internal/repository"
)

type UserService struct {
	store *repository.Store
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{store: store}
}

// FindOrCreateGoogle resolves a verified Google identity to an app account,
// creating it on first sign-in.
func (s *UserService) FindOrCreateGoogle(ctx context.Context, googleSub, email, name string) (*domain.User, error) {
	return s.store.UpsertGoogleUser(ctx, googleSub, email, name)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}
