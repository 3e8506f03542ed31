package workers

import (
	"context"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

const DefaultQueueSize = 100

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type StreakJob struct {
	HabitID string
}

// StreakWorker refreshes the stored streak counters of habits whose
// completions changed. Counters are computed in the analyzer's location.
type StreakWorker struct {
	habitRepo HabitRepository
	analyzer  *analyzer.Analyzer
	logger    *zap.Logger
	jobs      chan StreakJob
	done      chan struct{}
}

func NewStreakWorker(habitRepo HabitRepository, a *analyzer.Analyzer, logger *zap.Logger, queueSize int) *StreakWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreakWorker{
		habitRepo: habitRepo,
		analyzer:  a,
		logger:    logger.Named("streak_worker"),
		jobs:      make(chan StreakJob, queueSize),
		done:      make(chan struct{}),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)

		w.logger.Info("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("streak worker shutting down", zap.Int("pending", len(w.jobs)))
				return
			}
		}
	}()
}

// Done is closed once the worker goroutine has returned.
func (w *StreakWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks; jobs are dropped when the queue is full.
func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		w.logger.Warn("streak queue full, dropping job", zap.String("habit_id", habitID))
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	log := w.logger.With(zap.String("habit_id", job.HabitID))

	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Warn("failed to fetch habit", zap.Error(err))
		return
	}

	current, longest, err := w.calculateStreaks(habit.CompletionSnapshot())
	if err != nil {
		log.Error("habit holds an invalid completion", zap.Error(err))
		return
	}

	if habit.CurrentStreak == current && habit.LongestStreak == longest {
		return
	}

	if err := w.habitRepo.UpdateStreaks(ctx, habit.ID, current, longest); err != nil {
		log.Error("failed to update streak", zap.Error(err))
		return
	}

	log.Debug("streak updated", zap.Int("current", current), zap.Int("longest", longest))
}

func (w *StreakWorker) calculateStreaks(completions []string) (int, int, error) {
	dates, err := domain.ParseDates(completions)
	if err != nil {
		return 0, 0, err
	}
	return analyzer.Streak(dates, w.analyzer.Today()), analyzer.LongestStreak(dates), nil
}
