package services

import (
	"context"
	"errors"
	"time"

	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

// StreakQueue schedules recomputation of a habit's stored streak counters.
type StreakQueue interface {
	Enqueue(habitID string)
}

type CompletionService struct {
	habitRepo domain.HabitRepository
	analyzer  *analyzer.Analyzer
	queue     StreakQueue
}

func NewCompletionService(habitRepo domain.HabitRepository, a *analyzer.Analyzer, queue StreakQueue) *CompletionService {
	return &CompletionService{
		habitRepo: habitRepo,
		analyzer:  a,
		queue:     queue,
	}
}

type ToggleCompletionInput struct {
	HabitID   string
	UserID    string
	Date      string
	Completed bool
	Location  *time.Location
}

type ReplaceCompletionsInput struct {
	HabitID     string
	UserID      string
	Completions []string
	Version     int
	Location    *time.Location
}

func (s *CompletionService) Mark(ctx context.Context, habitID, userID, date string, loc *time.Location) (*domain.Habit, error) {
	return s.Toggle(ctx, ToggleCompletionInput{HabitID: habitID, UserID: userID, Date: date, Completed: true, Location: loc})
}

func (s *CompletionService) Unmark(ctx context.Context, habitID, userID, date string, loc *time.Location) (*domain.Habit, error) {
	return s.Toggle(ctx, ToggleCompletionInput{HabitID: habitID, UserID: userID, Date: date, Completed: false, Location: loc})
}

// Toggle adds or removes one completion. Repeating a toggle is a no-op and
// does not bump the version. A version conflict is retried once against a
// fresh read since callers send no version.
func (s *CompletionService) Toggle(ctx context.Context, input ToggleCompletionInput) (*domain.Habit, error) {
	day, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	if input.Completed {
		if err := s.rejectFuture(day, input.Location); err != nil {
			return nil, err
		}
	}

	habit, err := s.toggleOnce(ctx, input, day)
	if errors.Is(err, domain.ErrHabitConflict) {
		habit, err = s.toggleOnce(ctx, input, day)
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *CompletionService) toggleOnce(ctx context.Context, input ToggleCompletionInput, day domain.Date) (*domain.Habit, error) {
	habit, err := s.ownedHabit(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	var changed bool
	if input.Completed {
		changed, err = habit.MarkComplete(day)
	} else {
		changed, err = habit.Unmark(day)
	}
	if err != nil {
		return nil, err
	}

	if !changed {
		return habit, nil
	}

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.queue.Enqueue(habit.ID)

	return habit, nil
}

// Replace stores a whole completion set sent by a client.
func (s *CompletionService) Replace(ctx context.Context, input ReplaceCompletionsInput) (*domain.Habit, error) {
	normalized, err := domain.NormalizeCompletions(input.Completions)
	if err != nil {
		return nil, err
	}

	if len(normalized) > 0 {
		latest := domain.MustParseDate(normalized[len(normalized)-1])
		if err := s.rejectFuture(latest, input.Location); err != nil {
			return nil, err
		}
	}

	habit, err := s.ownedHabit(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, domain.ErrHabitConflict
	}

	if err := habit.ReplaceCompletions(normalized); err != nil {
		return nil, err
	}

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.queue.Enqueue(habit.ID)

	return habit, nil
}

func (s *CompletionService) ownedHabit(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *CompletionService) rejectFuture(day domain.Date, loc *time.Location) error {
	if day.After(s.analyzer.In(loc).Today()) {
		return domain.ErrFutureCompletion
	}
	return nil
}
