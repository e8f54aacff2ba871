package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/ai"
	"github.com/newlifejournal/newlifejournal/internal/config"
	"github.com/newlifejournal/newlifejournal/internal/domain"
	"github.com/newlifejournal/newlifejournal/internal/repository"
)

type PregnancyService struct {
	store *repository.Store
}

func NewPregnancyService(store *repository.Store) *PregnancyService {
	return &PregnancyService{store: store}
}

type CreatePregnancyParams struct {
	MotherName     string
	DueDate        time.Time
	BabyName       string
	Hospital       string
	DoctorName     string
	DoctorPhone    string
	BloodType      string
	ConceptionDate *time.Time
}

func (s *PregnancyService) Create(ctx context.Context, userID uuid.UUID, params CreatePregnancyParams) (*domain.Pregnancy, error) {
	now := time.Now()
	p := &domain.Pregnancy{
		ID:             uuid.New(),
		UserID:         userID,
		MotherName:     params.MotherName,
		DueDate:        params.DueDate,
		ConceptionDate: params.ConceptionDate,
		CurrentWeek:    domain.WeekFromDueDate(params.DueDate, now),
		BabyName:       params.BabyName,
		Hospital:       params.Hospital,
		DoctorName:     params.DoctorName,
		DoctorPhone:    params.DoctorPhone,
		BloodType:      params.BloodType,
		Status:         domain.PregnancyActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreatePregnancy(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetOwned loads a pregnancy and verifies the caller owns it. The current
// week is recomputed from the due date so it never goes stale.
func (s *PregnancyService) GetOwned(ctx context.Context, userID, pregnancyID uuid.UUID) (*domain.Pregnancy, error) {
	p, err := s.store.GetPregnancy(ctx, pregnancyID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	p.CurrentWeek = domain.WeekFromDueDate(p.DueDate, time.Now())
	return p, nil
}

func (s *PregnancyService) List(ctx context.Context, userID uuid.UUID) ([]domain.Pregnancy, error) {
	list, err := s.store.ListPregnancies(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range list {
		if list[i].IsActive() {
			list[i].CurrentWeek = domain.WeekFromDueDate(list[i].DueDate, now)
		}
	}
	return list, nil
}

func (s *PregnancyService) Update(ctx context.Context, userID uuid.UUID, p *domain.Pregnancy) error {
	existing, err := s.GetOwned(ctx, userID, p.ID)
	if err != nil {
		return err
	}
	// Status transitions only happen through Complete.
	p.UserID = existing.UserID
	p.CreatedAt = existing.CreatedAt
	p.Status = existing.Status
	p.CompletedAt = existing.CompletedAt
	p.TransitionedToBabyID = existing.TransitionedToBabyID
	p.CurrentWeek = domain.WeekFromDueDate(p.DueDate, time.Now())
	return s.store.UpdatePregnancy(ctx, p)
}

type CompletePregnancyParams struct {
	BabyName    string
	BirthDate   time.Time
	BirthWeight *float64
	BirthHeight *float64
	Gender      string
}

// Complete marks a pregnancy finished and creates the baby record that
// tracking hands over to.
func (s *PregnancyService) Complete(ctx context.Context, userID, pregnancyID uuid.UUID, params CompletePregnancyParams) (*domain.Baby, error) {
	p, err := s.GetOwned(ctx, userID, pregnancyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	name := params.BabyName
	if name == "" {
		name = p.BabyName
	}

	baby := &domain.Baby{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		BirthDate:       params.BirthDate,
		BirthWeight:     params.BirthWeight,
		BirthHeight:     params.BirthHeight,
		Gender:          params.Gender,
		Stage:           domain.StageNewborn,
		FromPregnancyID: &p.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateBaby(ctx, baby); err != nil {
		return nil, err
	}

	p.Status = domain.PregnancyCompleted
	p.CompletedAt = &now
	p.TransitionedToBabyID = &baby.ID
	if err := s.store.UpdatePregnancy(ctx, p); err != nil {
		return nil, fmt.Errorf("complete pregnancy: %w", err)
	}

	return baby, nil
}

func (s *PregnancyService) AddVisit(ctx context.Context, userID uuid.UUID, v *domain.HospitalVisit) error {
	p, err := s.GetOwned(ctx, userID, v.PregnancyID)
	if err != nil {
		return err
	}
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	if v.Week == 0 {
		v.Week = domain.WeekFromDueDate(p.DueDate, v.Date)
	}
	return s.store.CreateVisit(ctx, v)
}

func (s *PregnancyService) ListVisits(ctx context.Context, userID, pregnancyID uuid.UUID) ([]domain.HospitalVisit, error) {
	if _, err := s.GetOwned(ctx, userID, pregnancyID); err != nil {
		return nil, err
	}
	return s.store.ListVisits(ctx, pregnancyID, 0)
}

func (s *PregnancyService) DeleteVisit(ctx context.Context, userID, pregnancyID, visitID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, userID, pregnancyID); err != nil {
		return err
	}
	return s.store.DeleteVisit(ctx, pregnancyID, visitID)
}

func (s *PregnancyService) AddSymptom(ctx context.Context, userID uuid.UUID, sym *domain.Symptom) error {
	p, err := s.GetOwned(ctx, userID, sym.PregnancyID)
	if err != nil {
		return err
	}
	if sym.Severity < 1 || sym.Severity > 5 {
		return fmt.Errorf("severity %d out of range", sym.Severity)
	}
	sym.ID = uuid.New()
	sym.CreatedAt = time.Now()
	if sym.Week == 0 {
		sym.Week = domain.WeekFromDueDate(p.DueDate, sym.Date)
	}
	return s.store.CreateSymptom(ctx, sym)
}

func (s *PregnancyService) ListSymptoms(ctx context.Context, userID, pregnancyID uuid.UUID) ([]domain.Symptom, error) {
	if _, err := s.GetOwned(ctx, userID, pregnancyID); err != nil {
		return nil, err
	}
	return s.store.ListSymptoms(ctx, pregnancyID, 0)
}

func (s *PregnancyService) DeleteSymptom(ctx context.Context, userID, pregnancyID, symptomID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, userID, pregnancyID); err != nil {
		return err
	}
	return s.store.DeleteSymptom(ctx, pregnancyID, symptomID)
}

func (s *PregnancyService) AddMilestone(ctx context.Context, userID uuid.UUID, m *domain.Milestone) error {
	p, err := s.GetOwned(ctx, userID, m.PregnancyID)
	if err != nil {
		return err
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	if m.Week == 0 {
		m.Week = domain.WeekFromDueDate(p.DueDate, m.Date)
	}
	return s.store.CreateMilestone(ctx, m)
}

func (s *PregnancyService) ListMilestones(ctx context.Context, userID, pregnancyID uuid.UUID) ([]domain.Milestone, error) {
	if _, err := s.GetOwned(ctx, userID, pregnancyID); err != nil {
		return nil, err
	}
	return s.store.ListMilestones(ctx, pregnancyID, 0)
}

func (s *PregnancyService) DeleteMilestone(ctx context.Context, userID, pregnancyID, milestoneID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, userID, pregnancyID); err != nil {
		return err
	}
	return s.store.DeleteMilestone(ctx, pregnancyID, milestoneID)
}

// Timeline merges visits, symptoms and milestones into one feed, newest
// first.
func (s *PregnancyService) Timeline(ctx context.Context, userID, pregnancyID uuid.UUID) ([]domain.TimelineEntry, error) {
	if _, err := s.GetOwned(ctx, userID, pregnancyID); err != nil {
		return nil, err
	}

	visits, err := s.store.ListVisits(ctx, pregnancyID, 0)
	if err != nil {
		return nil, err
	}
	symptoms, err := s.store.ListSymptoms(ctx, pregnancyID, 0)
	if err != nil {
		return nil, err
	}
	milestones, err := s.store.ListMilestones(ctx, pregnancyID, 0)
	if err != nil {
		return nil, err
	}

	return MergeTimeline(visits, symptoms, milestones), nil
}

// MergeTimeline is the pure merge behind Timeline, exposed for reuse.
func MergeTimeline(visits []domain.HospitalVisit, symptoms []domain.Symptom, milestones []domain.Milestone) []domain.TimelineEntry {
	entries := make([]domain.TimelineEntry, 0, len(visits)+len(symptoms)+len(milestones))

	for _, v := range visits {
		entries = append(entries, domain.TimelineEntry{
			Type:        domain.TimelineVisit,
			RecordID:    v.ID,
			Timestamp:   v.Date,
			Week:        v.Week,
			Title:       string(v.Type),
			Description: v.Notes,
		})
	}
	for _, sym := range symptoms {
		entries = append(entries, domain.TimelineEntry{
			Type:        domain.TimelineSymptom,
			RecordID:    sym.ID,
			Timestamp:   sym.Date,
			Week:        sym.Week,
			Title:       fmt.Sprintf("%s (severity %d/5)", sym.Type, sym.Severity),
			Description: sym.Notes,
		})
	}
	for _, m := range milestones {
		entries = append(entries, domain.TimelineEntry{
			Type:        domain.TimelineMilestone,
			RecordID:    m.ID,
			Timestamp:   m.Date,
			Week:        m.Week,
			Title:       m.Title,
			Description: m.Description,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

func (s *PregnancyService) ListBabies(ctx context.Context, userID uuid.UUID) ([]domain.Baby, error) {
	return s.store.ListBabies(ctx, userID)
}

func (s *PregnancyService) GetBaby(ctx context.Context, userID, babyID uuid.UUID) (*domain.Baby, error) {
	b, err := s.store.GetBaby(ctx, babyID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.ErrBabyNotFound
	}
	return b, nil
}

// Snapshot gathers the recent pregnancy data the chat assistant grounds its
// answers on.
func (s *PregnancyService) Snapshot(ctx context.Context, userID, pregnancyID uuid.UUID) (*ai.PregnancyContext, error) {
	p, err := s.GetOwned(ctx, userID, pregnancyID)
	if err != nil {
		return nil, err
	}

	visits, err := s.store.ListVisits(ctx, pregnancyID, config.SnapshotVisits)
	if err != nil {
		return nil, err
	}
	symptoms, err := s.store.ListSymptoms(ctx, pregnancyID, config.SnapshotSymptoms)
	if err != nil {
		return nil, err
	}
	milestones, err := s.store.ListMilestones(ctx, pregnancyID, config.SnapshotMilestones)
	if err != nil {
		return nil, err
	}

	return &ai.PregnancyContext{
		Pregnancy:        *p,
		RecentVisits:     visits,
		RecentSymptoms:   symptoms,
		RecentMilestones: milestones,
		Now:              time.Now(),
	}, nil
}
