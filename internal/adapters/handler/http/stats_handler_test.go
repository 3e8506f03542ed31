package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weeklyStatsBody struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalHabits int     `json:"total_habits"`
	OverallRate float64 `json:"overall_completion_rate"`
	Habits      []struct {
		HabitName      string  `json:"habit_name"`
		CurrentStreak  int     `json:"current_streak"`
		CompletionRate float64 `json:"completion_rate"`
		DaysCompleted  int     `json:"days_completed"`
		DailyProgress  []struct {
			Date      string `json:"date"`
			Completed int    `json:"completed"`
		} `json:"daily_progress"`
	} `json:"habits"`
}

func TestStatsHandler_GetWeeklyStats(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedHabit(t, env.userID, "Meditate", "2024-06-08", "2024-06-09", "2024-06-10")
	env.seedHabit(t, env.userID, "Read", "2024-06-09")

	t.Run("Success: Default window is the last 7 days", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/stats/weekly", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode[weeklyStatsBody](t, w)
		assert.Equal(t, "2024-06-04", body.StartDate)
		assert.Equal(t, "2024-06-10", body.EndDate)
		assert.Equal(t, 2, body.TotalHabits)
		require.Len(t, body.Habits, 2)
		assert.Len(t, body.Habits[0].DailyProgress, 7)
	})

	t.Run("Success: Explicit range", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/stats/weekly?start_date=2024-06-08&end_date=2024-06-10", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode[weeklyStatsBody](t, w)
		require.Len(t, body.Habits, 2)

		rates := map[string]float64{}
		for _, h := range body.Habits {
			rates[h.HabitName] = h.CompletionRate
		}
		assert.InDelta(t, 100.0, rates["Meditate"], 0.01)
		assert.InDelta(t, 33.33, rates["Read"], 0.01)
		assert.InDelta(t, 66.67, body.OverallRate, 0.01)
	})

	t.Run("Success: Default end follows the caller's zone", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/stats/weekly", nil, withTimezone("Pacific/Honolulu"))
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "2024-06-09", decode[weeklyStatsBody](t, w).EndDate)
	})

	t.Run("Fail: Bad ranges are 400", func(t *testing.T) {
		for _, query := range []string{
			"?start_date=2024/06/01",
			"?end_date=june",
			"?start_date=2024-06-10&end_date=2024-06-01",
			"?start_date=2022-01-01&end_date=2024-06-10",
		} {
			w := env.authed(http.MethodGet, "/api/v1/stats/weekly"+query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
	})

	t.Run("Security: Other users see only their habits", func(t *testing.T) {
		_, otherToken := env.newUser(t, "eve@example.com")

		w := env.do(http.MethodGet, "/api/v1/stats/weekly", nil, withToken(otherToken))
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[weeklyStatsBody](t, w)
		assert.Equal(t, 0, body.TotalHabits)
		assert.Empty(t, body.Habits)
		assert.Zero(t, body.OverallRate)
	})
}
