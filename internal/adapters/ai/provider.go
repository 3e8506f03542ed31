// Package ai holds the motivational message generators backed by hosted
// language models, plus an offline static generator.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStatic = "static"
	ProviderNone   = "none"
)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewGenerator builds the generator named by cfg.Provider. ProviderNone
// returns nil, which makes the motivation service always fall back.
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (domain.MotivationGenerator, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		g, err := NewGeminiGenerator(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderOpenAI:
		g, err := NewOpenAIGenerator(cfg, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderStatic, "":
		return StaticGenerator{}, nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// StaticGenerator writes a canned message from the streak length. It never
// fails, so it suits offline development and tests.
type StaticGenerator struct{}

func (StaticGenerator) GenerateMotivation(ctx context.Context, input domain.MotivationInput) (string, error) {
	switch {
	case input.StreakLength <= 0:
		return fmt.Sprintf("Every streak starts with a single day. Make today count for %s!", input.HabitName), nil
	case input.StreakLength == 1:
		return fmt.Sprintf("Day one of %s is done. Come back tomorrow to make it two!", input.HabitName), nil
	default:
		return fmt.Sprintf("%d days in a row for %s. Keep the streak going!", input.StreakLength, input.HabitName), nil
	}
}
