package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrHabitDeleted       = errors.New("cannot modify a deleted habit")
)

const MaxNameLen = 100

type Habit struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Completions   []string   `json:"completions"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}
	return trimmed, nil
}

func NewHabit(userID, name string) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	cleanName, err := validateName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        cleanName,
		Completions: []string{},
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (h *Habit) Rename(name string) error {
	if h.DeletedAt != nil {
		return ErrHabitDeleted
	}

	cleanName, err := validateName(name)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkComplete adds d to the completion set. It reports whether the set changed.
func (h *Habit) MarkComplete(d Date) (bool, error) {
	if h.DeletedAt != nil {
		return false, ErrHabitDeleted
	}

	key := d.String()
	idx, found := slices.BinarySearch(h.Completions, key)
	if found {
		return false, nil
	}

	h.Completions = slices.Insert(h.Completions, idx, key)
	h.UpdatedAt = time.Now().UTC()
	return true, nil
}

// Unmark removes d from the completion set. It reports whether the set changed.
func (h *Habit) Unmark(d Date) (bool, error) {
	if h.DeletedAt != nil {
		return false, ErrHabitDeleted
	}

	idx, found := slices.BinarySearch(h.Completions, d.String())
	if !found {
		return false, nil
	}

	h.Completions = slices.Delete(h.Completions, idx, idx+1)
	h.UpdatedAt = time.Now().UTC()
	return true, nil
}

// ReplaceCompletions swaps the whole completion set after validating it.
func (h *Habit) ReplaceCompletions(values []string) error {
	if h.DeletedAt != nil {
		return ErrHabitDeleted
	}

	normalized, err := NormalizeCompletions(values)
	if err != nil {
		return err
	}

	h.Completions = normalized
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) IsCompletedOn(d Date) bool {
	_, found := slices.BinarySearch(h.Completions, d.String())
	return found
}

func (h *Habit) UpdateStreak(current, longest int) {
	h.CurrentStreak = current
	h.LongestStreak = longest
}

// CompletionSnapshot returns a copy of the completion set, safe to hand to
// readers while the habit keeps changing.
func (h *Habit) CompletionSnapshot() []string {
	return slices.Clone(h.Completions)
}

func (h *Habit) Clone() *Habit {
	c := *h
	c.Completions = slices.Clone(h.Completions)
	if h.DeletedAt != nil {
		deleted := *h.DeletedAt
		c.DeletedAt = &deleted
	}
	return &c
}

// NormalizeCompletions validates every date and returns the canonical,
// sorted, duplicate-free set.
func NormalizeCompletions(values []string) ([]string, error) {
	dates, err := ParseDates(values)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
