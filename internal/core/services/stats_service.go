package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

const MaxStatsRangeDays = 366

var (
	ErrStatsRangeInverted = errors.New("start_date cannot be after end_date")
	ErrStatsRangeTooLarge = errors.New("date range too large, max 1 year allowed")
)

type StatsService struct {
	habitRepo domain.HabitRepository
	analyzer  *analyzer.Analyzer
}

func NewStatsService(habitRepo domain.HabitRepository, a *analyzer.Analyzer) *StatsService {
	return &StatsService{
		habitRepo: habitRepo,
		analyzer:  a,
	}
}

// GetWeeklyStats reports per-habit completion over a date range, by default
// the seven days ending today in the caller's location.
func (s *StatsService) GetWeeklyStats(ctx context.Context, input domain.StatsInput) (*domain.WeeklyStats, error) {
	az := s.analyzer.In(input.Location)
	today := az.Today()

	endDate := today
	if input.EndDate != nil {
		endDate = *input.EndDate
	}

	startDate := endDate.AddDays(-(analyzer.HistoryDays - 1))
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	if startDate.After(endDate) {
		return nil, ErrStatsRangeInverted
	}
	if endDate.DaysSince(startDate) > MaxStatsRangeDays {
		return nil, ErrStatsRangeTooLarge
	}

	habits, err := s.habitRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	days := endDate.DaysSince(startDate) + 1

	stats := &domain.WeeklyStats{
		StartDate:   startDate.String(),
		EndDate:     endDate.String(),
		TotalHabits: len(habits),
		HabitStats:  make([]domain.HabitStat, 0, len(habits)),
	}

	totalDaysPossible := 0
	totalDaysCompleted := 0

	for _, h := range habits {
		dates, err := domain.ParseDates(h.CompletionSnapshot())
		if err != nil {
			return nil, err
		}

		hStat := domain.HabitStat{
			HabitID:       h.ID,
			HabitName:     h.Name,
			CurrentStreak: analyzer.Streak(dates, today),
			LongestStreak: analyzer.LongestStreak(dates),
			DailyProgress: analyzer.History(dates, endDate, days),
		}

		for _, day := range hStat.DailyProgress {
			hStat.DaysCompleted += day.Completed
		}

		hStat.CompletionRate = float64(hStat.DaysCompleted) / float64(days) * 100

		totalDaysCompleted += hStat.DaysCompleted
		totalDaysPossible += days

		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	if totalDaysPossible > 0 {
		stats.OverallRate = float64(totalDaysCompleted) / float64(totalDaysPossible) * 100
	}

	return stats, nil
}
