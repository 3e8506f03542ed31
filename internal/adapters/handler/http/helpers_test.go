package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/habitual/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitual/internal/adapters/repository"
	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

// 2024-06-10 09:30 UTC is already 18:30 in Tokyo and still 2024-06-09 in Honolulu.
var fixedNow = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

type recordingQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *recordingQueue) Enqueue(habitID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, habitID)
}

func (q *recordingQueue) enqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...)
}

type generatorFunc func(ctx context.Context, input domain.MotivationInput) (string, error)

func (f generatorFunc) GenerateMotivation(ctx context.Context, input domain.MotivationInput) (string, error) {
	return f(ctx, input)
}

type testEnv struct {
	router    *gin.Engine
	habits    *repository.InMemoryHabitRepository
	users     *repository.InMemoryUserRepository
	tokens    *services.TokenService
	queue     *recordingQueue
	habitSvc  *services.HabitService
	userID    string
	authToken string
}

func newTestEnv(t *testing.T, generator domain.MotivationGenerator) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	az := analyzer.New(func() time.Time { return fixedNow }, time.UTC)

	env := &testEnv{
		habits: repository.NewInMemoryHabitRepository(),
		users:  repository.NewInMemoryUserRepository(),
		queue:  &recordingQueue{},
	}
	env.tokens = services.NewTokenService("test-secret", "habitual-test", time.Hour, env.users)
	env.habitSvc = services.NewHabitService(env.habits, az)

	motivationSvc := services.NewMotivationService(env.habits, generator, nil, az, services.MotivationOptions{
		NewBackOff: func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}, nil)

	env.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(services.NewAuthService(env.users, env.tokens)),
		HabitHandler:      adapterHTTP.NewHabitHandler(env.habitSvc),
		CompletionHandler: adapterHTTP.NewCompletionHandler(services.NewCompletionService(env.habits, az, env.queue), env.habitSvc),
		StatsHandler:      adapterHTTP.NewStatsHandler(services.NewStatsService(env.habits, az)),
		MotivationHandler: adapterHTTP.NewMotivationHandler(motivationSvc),
		TokenService:      env.tokens,
		DefaultLocation:   time.UTC,
		StartTime:         fixedNow,
	})

	env.userID, env.authToken = env.newUser(t, "ann@example.com")
	return env
}

// newUser stores a user directly and returns its id and a valid token.
func (e *testEnv) newUser(t *testing.T, email string) (string, string) {
	t.Helper()

	user, err := domain.NewUser(uuid.NewString(), email)
	require.NoError(t, err)
	require.NoError(t, e.users.Create(context.Background(), user))

	token, _, err := e.tokens.GenerateToken(user.ID)
	require.NoError(t, err)
	return user.ID, token
}

func (e *testEnv) seedHabit(t *testing.T, userID, name string, completions ...string) *domain.Habit {
	t.Helper()

	habit, err := domain.NewHabit(userID, name)
	require.NoError(t, err)
	require.NoError(t, habit.ReplaceCompletions(completions))
	require.NoError(t, e.habits.Create(context.Background(), habit))
	return habit
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withTimezone(tz string) requestOption {
	return func(r *http.Request) { r.Header.Set("X-Timezone", tz) }
}

func (e *testEnv) do(method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// authed sends a request as the default user.
func (e *testEnv) authed(method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	return e.do(method, path, body, append([]requestOption{withToken(e.authToken)}, opts...)...)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type habitViewBody struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Completions   []string `json:"completions"`
	Version       int      `json:"version"`
	CurrentStreak int      `json:"current_streak"`
	Summary       struct {
		Today          string             `json:"today"`
		CurrentStreak  int                `json:"current_streak"`
		LongestStreak  int                `json:"longest_streak"`
		CompletedToday bool               `json:"completed_today"`
		History        []domain.DayStatus `json:"history"`
	} `json:"summary"`
}
