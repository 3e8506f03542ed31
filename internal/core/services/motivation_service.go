package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

const (
	DefaultMotivationAttempts = 3
	DefaultAttemptTimeout     = 15 * time.Second
)

// MotivationCache stores generated messages. Misses and write failures are
// never fatal.
type MotivationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, message string)
}

type MotivationOptions struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	// NewBackOff builds the wait policy between attempts.
	NewBackOff func() backoff.BackOff
}

type MotivationService struct {
	habitRepo domain.HabitRepository
	generator domain.MotivationGenerator
	cache     MotivationCache
	analyzer  *analyzer.Analyzer
	opts      MotivationOptions
	logger    *zap.Logger
}

func NewMotivationService(habitRepo domain.HabitRepository, generator domain.MotivationGenerator, cache MotivationCache, a *analyzer.Analyzer, opts MotivationOptions, logger *zap.Logger) *MotivationService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = DefaultMotivationAttempts
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = DefaultAttemptTimeout
	}
	if opts.NewBackOff == nil {
		opts.NewBackOff = defaultBackOff
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MotivationService{
		habitRepo: habitRepo,
		generator: generator,
		cache:     cache,
		analyzer:  a,
		opts:      opts,
		logger:    logger,
	}
}

// defaultBackOff has no elapsed-time cap: MaxAttempts and the caller's
// context bound the loop, so slow attempts cannot eat the remaining ones.
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 4 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Generate produces a motivational message for one of the user's habits.
// Generator failures degrade to the static fallback message; only lookup
// errors (missing habit, bad data) are returned.
func (s *MotivationService) Generate(ctx context.Context, habitID, userID string, loc *time.Location) (*domain.MotivationResult, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	az := s.analyzer.In(loc)
	completions := habit.CompletionSnapshot()

	streak, err := az.ComputeStreak(completions)
	if err != nil {
		return nil, fmt.Errorf("habit %s holds an invalid completion: %w", habit.ID, err)
	}

	key := cacheKey(habit.ID, az.CurrentDate(), streak)
	if s.cache != nil {
		if msg, ok := s.cache.Get(ctx, key); ok {
			return &domain.MotivationResult{Message: msg, Source: domain.MotivationCached, Streak: streak}, nil
		}
	}

	input := domain.NewMotivationInput(habit.Name, completions, streak)

	msg, attempts, err := s.generateWithRetry(ctx, input)
	if err != nil {
		s.logger.Warn("motivation generation failed, using fallback",
			zap.String("habit_id", habit.ID),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		return &domain.MotivationResult{
			Message:  domain.FallbackMotivation,
			Source:   domain.MotivationFallback,
			Attempts: attempts,
			Streak:   streak,
		}, nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, msg)
	}

	return &domain.MotivationResult{
		Message:  msg,
		Source:   domain.MotivationGenerated,
		Attempts: attempts,
		Streak:   streak,
	}, nil
}

func (s *MotivationService) generateWithRetry(ctx context.Context, input domain.MotivationInput) (string, int, error) {
	if s.generator == nil {
		return "", 0, errors.New("no motivation generator configured")
	}

	var msg string
	attempts := 0

	operation := func() error {
		attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.AttemptTimeout)
		defer cancel()

		raw, err := s.generator.GenerateMotivation(attemptCtx, input)
		if err != nil {
			if errors.Is(err, domain.ErrMotivationRejected) {
				return backoff.Permanent(err)
			}
			return err
		}

		cleaned, err := domain.CleanMotivation(raw)
		if err != nil {
			return err
		}

		msg = cleaned
		return nil
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Debug("motivation attempt failed",
			zap.Int("attempt", attempts),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(s.opts.NewBackOff(), uint64(s.opts.MaxAttempts-1)),
		ctx,
	)

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return "", attempts, err
	}
	return msg, attempts, nil
}

func cacheKey(habitID, today string, streak int) string {
	return fmt.Sprintf("%s:%s:%d", habitID, today, streak)
}
