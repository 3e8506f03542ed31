package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

var ErrInvalidHabitID = errors.New("habit id must be a UUID")

type HabitService struct {
	repo     domain.HabitRepository
	analyzer *analyzer.Analyzer
}

func NewHabitService(repo domain.HabitRepository, a *analyzer.Analyzer) *HabitService {
	return &HabitService{
		repo:     repo,
		analyzer: a,
	}
}

type CreateHabitInput struct {
	// ID is optional; offline clients generate their own.
	ID     string
	UserID string
	Name   string
}

type RenameHabitInput struct {
	ID      string
	UserID  string
	Name    string
	Version int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name)
	if err != nil {
		return nil, err
	}

	if input.ID != "" {
		if _, err := uuid.Parse(input.ID); err != nil {
			return nil, ErrInvalidHabitID
		}

		existing, err := s.repo.GetByID(ctx, input.ID)
		switch {
		case err == nil && existing.UserID == input.UserID:
			return existing, nil
		case err == nil:
			return nil, domain.ErrHabitConflict
		case !errors.Is(err, domain.ErrHabitNotFound):
			return nil, err
		}
		habit.ID = input.ID
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// Get returns a habit owned by userID; foreign habits look missing.
func (s *HabitService) Get(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) GetDelta(ctx context.Context, userID string, lastSync time.Time) ([]*domain.Habit, error) {
	return s.repo.GetChanges(ctx, userID, lastSync)
}

func (s *HabitService) Rename(ctx context.Context, input RenameHabitInput) (*domain.Habit, error) {
	habit, err := s.Get(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	if err := habit.Rename(input.Name); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// View decorates a habit with its streak and history as seen from loc.
func (s *HabitService) View(habit *domain.Habit, loc *time.Location) (*domain.HabitView, error) {
	summary, err := s.analyzer.In(loc).Summarize(habit.CompletionSnapshot())
	if err != nil {
		return nil, fmt.Errorf("habit %s holds an invalid completion: %w", habit.ID, err)
	}
	return &domain.HabitView{Habit: habit, Summary: summary}, nil
}

func (s *HabitService) ViewAll(habits []*domain.Habit, loc *time.Location) ([]*domain.HabitView, error) {
	views := make([]*domain.HabitView, 0, len(habits))
	for _, h := range habits {
		v, err := s.View(h, loc)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
