package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultTimeout       = 30 * time.Second
)

var _ domain.MotivationGenerator = (*OpenAIGenerator)(nil)

type OpenAIGenerator struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIGenerator(cfg Config, logger *zap.Logger) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		// The motivation service owns the retry policy.
		option.WithMaxRetries(0),
	)

	return &OpenAIGenerator{
		client: client,
		model:  cfg.Model,
		logger: logger.Named("openai"),
	}, nil
}

func (g *OpenAIGenerator) GenerateMotivation(ctx context.Context, input domain.MotivationInput) (string, error) {
	prompt, err := buildPrompt(input)
	if err != nil {
		return "", err
	}

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(0.8),
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)
	if err != nil {
		g.logger.Debug("llm_api_error", zap.String("model", g.model), zap.Duration("latency", latency), zap.Error(err))
		return "", classify("openai", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}

	content := resp.Choices[0].Message.Content
	g.logger.Debug("llm_api_response",
		zap.String("model", g.model),
		zap.Int("response_length", len(content)),
		zap.Duration("latency", latency),
	)

	return parseReply(content)
}
