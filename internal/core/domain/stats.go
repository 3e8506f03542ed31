package domain

import "time"

// DayStatus is one calendar day of a habit's history.
type DayStatus struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Completed int    `json:"completed"`
}

type HabitSummary struct {
	Today          string      `json:"today"`
	CurrentStreak  int         `json:"current_streak"`
	LongestStreak  int         `json:"longest_streak"`
	CompletedToday bool        `json:"completed_today"`
	History        []DayStatus `json:"history"`
}

type HabitView struct {
	*Habit
	Summary HabitSummary `json:"summary"`
}

type WeeklyStats struct {
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	TotalHabits int         `json:"total_habits"`
	OverallRate float64     `json:"overall_completion_rate"`
	HabitStats  []HabitStat `json:"habits"`
}

type HabitStat struct {
	HabitID        string      `json:"habit_id"`
	HabitName      string      `json:"habit_name"`
	CurrentStreak  int         `json:"current_streak"`
	LongestStreak  int         `json:"longest_streak"`
	CompletionRate float64     `json:"completion_rate"`
	DaysCompleted  int         `json:"days_completed"`
	DailyProgress  []DayStatus `json:"daily_progress"`
}

type StatsInput struct {
	UserID    string
	StartDate *Date
	EndDate   *Date
	Location  *time.Location
}
