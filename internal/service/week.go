package service

import (
	"context"
	"fmt"

	"github.com/newlifejournal/newlifejournal/internal/domain"
	"github.com/newlifejournal/newlifejournal/internal/repository"
)

type WeekService struct {
	store *repository.Store
}

func NewWeekService(store *repository.Store) *WeekService {
	return &WeekService{store: store}
}

func (s *WeekService) Get(ctx context.Context, week int) (*domain.WeekInfo, error) {
	if week < domain.MinWeek || week > domain.FullTermWeeks {
		return nil, fmt.Errorf("week %d: %w", week, domain.ErrWeekNotFound)
	}
	return s.store.GetWeekInfo(ctx, week)
}

func (s *WeekService) List(ctx context.Context) ([]domain.WeekInfo, error) {
	return s.store.ListWeekInfo(ctx)
}
