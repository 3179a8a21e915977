package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/thefortaiagency/bendavis/config"
)

// AnthropicUsecase generates persona replies with Claude models.
type AnthropicUsecase struct {
	cfg    config.Anthropic
	client anthropic.Client
}

func NewAnthropicUsecase(cfg config.Anthropic, opts ...option.RequestOption) *AnthropicUsecase {
	if cfg.APIKey != "" {
		opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	}
	return &AnthropicUsecase{
		cfg:    cfg,
		client: anthropic.NewClient(opts...),
	}
}

func (a *AnthropicUsecase) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	message, err := a.client.Messages.New(
		ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(a.cfg.Model),
			MaxTokens:   int64(req.MaxTokens),
			Temperature: anthropic.Float(float64(req.Temperature)),
			System: []anthropic.TextBlockParam{
				{Text: req.System},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(req.Message)),
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	text := extractText(message)
	if text == "" {
		return "", ErrNoCandidates
	}
	return text, nil
}

func extractText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
