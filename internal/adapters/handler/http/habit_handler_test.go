package http_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabitHandler_Create(t *testing.T) {
	t.Run("Success: 201 with summary", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := env.authed(http.MethodPost, "/api/v1/habits", map[string]string{"name": "  Meditate "})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode[habitViewBody](t, w)
		assert.NotEmpty(t, body.ID)
		assert.Equal(t, "Meditate", body.Name)
		assert.Equal(t, 1, body.Version)
		assert.Empty(t, body.Completions)
		assert.Equal(t, "2024-06-10", body.Summary.Today)
		assert.Len(t, body.Summary.History, 7)
	})

	t.Run("Success: Client id makes retries idempotent", func(t *testing.T) {
		env := newTestEnv(t, nil)
		id := uuid.NewString()

		first := env.authed(http.MethodPost, "/api/v1/habits", map[string]string{"id": id, "name": "Run"})
		retry := env.authed(http.MethodPost, "/api/v1/habits", map[string]string{"id": id, "name": "Run"})

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusCreated, retry.Code)
		assert.Equal(t, id, decode[habitViewBody](t, retry).ID)

		list := decode[[]habitViewBody](t, env.authed(http.MethodGet, "/api/v1/habits", nil))
		assert.Len(t, list, 1)
	})

	t.Run("Fail: 400 on invalid input", func(t *testing.T) {
		env := newTestEnv(t, nil)

		cases := []any{
			`{"name": `,
			map[string]string{"name": ""},
			map[string]string{"name": "   "},
			map[string]string{"name": strings.Repeat("a", 101)},
			map[string]string{"id": "not-a-uuid", "name": "Run"},
		}
		for _, body := range cases {
			w := env.authed(http.MethodPost, "/api/v1/habits", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		}
	})

	t.Run("Fail: 401 without token", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := env.do(http.MethodPost, "/api/v1/habits", map[string]string{"name": "Run"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Security: Reusing another user's id is a conflict", func(t *testing.T) {
		env := newTestEnv(t, nil)
		_, otherToken := env.newUser(t, "eve@example.com")
		id := uuid.NewString()

		w := env.authed(http.MethodPost, "/api/v1/habits", map[string]string{"id": id, "name": "Run"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do(http.MethodPost, "/api/v1/habits", map[string]string{"id": id, "name": "Hijack"}, withToken(otherToken))
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHabitHandler_ListAndGet(t *testing.T) {
	env := newTestEnv(t, nil)
	otherID, _ := env.newUser(t, "eve@example.com")

	meditate := env.seedHabit(t, env.userID, "Meditate", "2024-06-08", "2024-06-09", "2024-06-10")
	env.seedHabit(t, env.userID, "Read", "2024-06-01")
	foreign := env.seedHabit(t, otherID, "Secret", "2024-06-10")

	t.Run("Success: List only own habits with live streaks", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits", nil)
		require.Equal(t, http.StatusOK, w.Code)

		list := decode[[]habitViewBody](t, w)
		require.Len(t, list, 2)

		byName := map[string]habitViewBody{}
		for _, h := range list {
			byName[h.Name] = h
		}
		assert.Equal(t, 3, byName["Meditate"].Summary.CurrentStreak)
		assert.True(t, byName["Meditate"].Summary.CompletedToday)
		assert.Equal(t, 0, byName["Read"].Summary.CurrentStreak)
		assert.Equal(t, 1, byName["Read"].Summary.LongestStreak)
	})

	t.Run("Success: Get one habit", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits/"+meditate.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[habitViewBody](t, w)
		assert.Equal(t, []string{"2024-06-08", "2024-06-09", "2024-06-10"}, body.Completions)
	})

	t.Run("Success: Summary follows the caller's zone", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits/"+meditate.ID, nil, withTimezone("Pacific/Honolulu"))
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[habitViewBody](t, w)
		assert.Equal(t, "2024-06-09", body.Summary.Today)
		require.Len(t, body.Summary.History, 7)
		assert.Equal(t, "2024-06-09", body.Summary.History[6].Date)
	})

	t.Run("Fail: Invalid zone is 400", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits?tz=Not/AZone", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Security: Foreign habit is 404", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits/"+foreign.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: Unknown habit is 404", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHabitHandler_History(t *testing.T) {
	env := newTestEnv(t, nil)
	habit := env.seedHabit(t, env.userID, "Meditate", "2024-06-04", "2024-06-08", "2024-06-09")

	w := env.authed(http.MethodGet, "/api/v1/habits/"+habit.ID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Today         string `json:"today"`
		CurrentStreak int    `json:"current_streak"`
		History       []struct {
			Date      string `json:"date"`
			Day       string `json:"day"`
			Completed int    `json:"completed"`
		} `json:"history"`
	}](t, w)

	assert.Equal(t, "2024-06-10", body.Today)
	assert.Equal(t, 2, body.CurrentStreak)
	require.Len(t, body.History, 7)
	assert.Equal(t, "2024-06-04", body.History[0].Date)
	assert.Equal(t, "Tue", body.History[0].Day)
	assert.Equal(t, 1, body.History[0].Completed)
	assert.Equal(t, "2024-06-10", body.History[6].Date)
	assert.Equal(t, 0, body.History[6].Completed)
}

func TestHabitHandler_Rename(t *testing.T) {
	t.Run("Success: Version is bumped", func(t *testing.T) {
		env := newTestEnv(t, nil)
		habit := env.seedHabit(t, env.userID, "Run")

		w := env.authed(http.MethodPut, "/api/v1/habits/"+habit.ID, map[string]any{"name": "Run 5k", "version": 1})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode[habitViewBody](t, w)
		assert.Equal(t, "Run 5k", body.Name)
		assert.Equal(t, 2, body.Version)
	})

	t.Run("Fail: Stale version is 409", func(t *testing.T) {
		env := newTestEnv(t, nil)
		habit := env.seedHabit(t, env.userID, "Run")

		w := env.authed(http.MethodPut, "/api/v1/habits/"+habit.ID, map[string]any{"name": "Run 5k", "version": 7})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "version conflict")
	})

	t.Run("Fail: Empty name is 400", func(t *testing.T) {
		env := newTestEnv(t, nil)
		habit := env.seedHabit(t, env.userID, "Run")

		w := env.authed(http.MethodPut, "/api/v1/habits/"+habit.ID, map[string]any{"name": " ", "version": 1})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHabitHandler_DeleteAndSync(t *testing.T) {
	env := newTestEnv(t, nil)
	before := time.Now().UTC().Add(-time.Second)
	habit := env.seedHabit(t, env.userID, "Run")

	w := env.authed(http.MethodDelete, "/api/v1/habits/"+habit.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	t.Run("Success: Deleted habit is gone from reads", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, env.authed(http.MethodGet, "/api/v1/habits/"+habit.ID, nil).Code)
		assert.Equal(t, http.StatusNotFound, env.authed(http.MethodDelete, "/api/v1/habits/"+habit.ID, nil).Code)
	})

	t.Run("Success: Sync reports the deletion", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits/sync?last_sync="+url.QueryEscape(before.Format(time.RFC3339)), nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			Changes []struct {
				ID        string     `json:"id"`
				DeletedAt *time.Time `json:"deleted_at"`
			} `json:"changes"`
			Timestamp time.Time `json:"timestamp"`
		}](t, w)

		require.Len(t, body.Changes, 1)
		assert.Equal(t, habit.ID, body.Changes[0].ID)
		assert.NotNil(t, body.Changes[0].DeletedAt)
		assert.False(t, body.Timestamp.IsZero())
	})

	t.Run("Success: Nothing new after the sync timestamp", func(t *testing.T) {
		later := time.Now().UTC().Add(time.Minute)
		w := env.authed(http.MethodGet, "/api/v1/habits/sync?last_sync="+url.QueryEscape(later.Format(time.RFC3339)), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"changes":[]`)
	})

	t.Run("Fail: Malformed last_sync is 400", func(t *testing.T) {
		w := env.authed(http.MethodGet, "/api/v1/habits/sync?last_sync=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
