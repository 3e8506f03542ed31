// Package analyzer derives streaks and recent history from a habit's
// completion dates. Every function works on a snapshot passed in by the
// caller and is safe for concurrent use.
package analyzer

import (
	"slices"
	"time"

	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

// HistoryDays is the length of the recent-activity window.
const HistoryDays = 7

type Clock func() time.Time

type Analyzer struct {
	now Clock
	loc *time.Location
}

// New returns an analyzer reading today from clock in loc.
// A nil clock means time.Now, a nil loc means time.Local.
func New(clock Clock, loc *time.Location) *Analyzer {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Analyzer{now: clock, loc: loc}
}

// In returns a copy of the analyzer whose "today" is taken in loc.
func (a *Analyzer) In(loc *time.Location) *Analyzer {
	if loc == nil {
		return a
	}
	return &Analyzer{now: a.now, loc: loc}
}

func (a *Analyzer) Location() *time.Location {
	return a.loc
}

func (a *Analyzer) Today() domain.Date {
	return domain.DateOf(a.now().In(a.loc))
}

// CurrentDate returns today as YYYY-MM-DD.
func (a *Analyzer) CurrentDate() string {
	return a.Today().String()
}

// ComputeStreak parses the completions and returns the live streak as of today.
func (a *Analyzer) ComputeStreak(completions []string) (int, error) {
	if len(completions) == 0 {
		return 0, nil
	}

	dates, err := domain.ParseDates(completions)
	if err != nil {
		return 0, err
	}
	return Streak(dates, a.Today()), nil
}

// Last7DayHistory returns the seven days ending today, oldest first.
func (a *Analyzer) Last7DayHistory(completions []string) ([]domain.DayStatus, error) {
	dates, err := domain.ParseDates(completions)
	if err != nil {
		return nil, err
	}
	return History(dates, a.Today(), HistoryDays), nil
}

// Summarize computes every derived value of one snapshot against a single
// clock reading.
func (a *Analyzer) Summarize(completions []string) (domain.HabitSummary, error) {
	dates, err := domain.ParseDates(completions)
	if err != nil {
		return domain.HabitSummary{}, err
	}

	today := a.Today()
	history := History(dates, today, HistoryDays)

	return domain.HabitSummary{
		Today:          today.String(),
		CurrentStreak:  Streak(dates, today),
		LongestStreak:  LongestStreak(dates),
		CompletedToday: history[len(history)-1].Completed == 1,
		History:        history,
	}, nil
}

// Streak counts consecutive days ending at the most recent completion.
// The streak is alive only if that completion is today or yesterday.
func Streak(dates []domain.Date, today domain.Date) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := sortedDesc(dates)
	mostRecent := sorted[0]

	if today.DaysSince(mostRecent) > 1 {
		return 0
	}

	streak := 1
	last := mostRecent
	for _, d := range sorted[1:] {
		gap := last.DaysSince(d)
		switch {
		case gap == 0:
			continue
		case gap == 1:
			streak++
			last = d
		default:
			return streak
		}
	}
	return streak
}

// LongestStreak is the longest run of consecutive days anywhere in dates.
func LongestStreak(dates []domain.Date) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := sortedDesc(dates)
	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		switch sorted[i-1].DaysSince(sorted[i]) {
		case 0:
		case 1:
			run++
		default:
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// History returns days entries ending at end, oldest first.
func History(dates []domain.Date, end domain.Date, days int) []domain.DayStatus {
	if days <= 0 {
		return []domain.DayStatus{}
	}

	done := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		done[d.String()] = struct{}{}
	}

	history := make([]domain.DayStatus, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := end.AddDays(-i)
		status := domain.DayStatus{
			Date: day.String(),
			Day:  day.ShortWeekday(),
		}
		if _, ok := done[status.Date]; ok {
			status.Completed = 1
		}
		history = append(history, status)
	}
	return history
}

func sortedDesc(dates []domain.Date) []domain.Date {
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b domain.Date) int {
		return b.Time().Compare(a.Time())
	})
	return sorted
}
