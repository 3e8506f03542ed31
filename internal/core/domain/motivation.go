package domain

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

var (
	ErrEmptyMotivation = errors.New("motivation generator returned an empty message")
	// ErrMotivationRejected marks generator failures that retrying cannot fix
	// (bad credentials, malformed request).
	ErrMotivationRejected = errors.New("motivation request rejected")
)

const (
	MaxMotivationSentences = 2
	FallbackMotivation     = "Couldn't get a motivational message. Keep trying!"
)

type MotivationSource string

const (
	MotivationGenerated MotivationSource = "generated"
	MotivationCached    MotivationSource = "cached"
	MotivationFallback  MotivationSource = "fallback"
)

type MotivationInput struct {
	HabitName         string `json:"habitName"`
	CompletionHistory string `json:"completionHistory"`
	StreakLength      int    `json:"streakLength"`
}

func NewMotivationInput(habitName string, completions []string, streak int) MotivationInput {
	return MotivationInput{
		HabitName:         habitName,
		CompletionHistory: strings.Join(completions, ","),
		StreakLength:      streak,
	}
}

type MotivationResult struct {
	Message  string           `json:"message"`
	Source   MotivationSource `json:"source"`
	Attempts int              `json:"attempts"`
	Streak   int              `json:"streak"`
}

type MotivationGenerator interface {
	// GenerateMotivation returns a short encouraging message for the input.
	GenerateMotivation(ctx context.Context, input MotivationInput) (string, error)
}

// CleanMotivation trims the text and keeps at most MaxMotivationSentences.
func CleanMotivation(text string) (string, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", ErrEmptyMotivation
	}

	sentences := 0
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if r == '.' && i > 0 && runes[i-1] == '.' {
			continue
		}
		sentences++
		if sentences == MaxMotivationSentences {
			return string(runes[:i+1]), nil
		}
	}
	return text, nil
}
