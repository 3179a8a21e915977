package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	openai_tools "github.com/thefortaiagency/bendavis/pkg/openaitools"
	"go.uber.org/zap"
)

var ErrImageNotGenerated = errors.New("image generation returned no url")

type OpenAIUsecase struct {
	cfg             config.OpenAI
	maxPromptTokens int
	client          *openai.Client
	logger          *zap.Logger
}

func NewOpenAIUsecase(cfg config.OpenAI, maxPromptTokens int, logger *zap.Logger) *OpenAIUsecase {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIUsecase{
		cfg:             cfg,
		maxPromptTokens: maxPromptTokens,
		client:          openai.NewClientWithConfig(clientConfig),
		logger:          logger,
	}
}

func (o *OpenAIUsecase) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Message,
		},
	}

	if o.maxPromptTokens > 0 {
		tokenCount, err := openai_tools.CountToken(messages, o.cfg.OpenAIModel)
		if err != nil {
			o.logger.Warn("count token error", zap.Error(err))
		} else if tokenCount > o.maxPromptTokens {
			return "", fmt.Errorf("%w: %d tokens, budget %d", ErrPromptTooLong, tokenCount, o.maxPromptTokens)
		}
	}

	resp, err := o.client.CreateChatCompletion(
		ctx, openai.ChatCompletionRequest{
			Model:       o.cfg.OpenAIModel,
			Messages:    messages,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	o.logger.Debug(
		"chat completion done",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoCandidates
	}
	return resp.Choices[0].Message.Content, nil
}

// CreateImage asks the image model for one picture and returns its temporary URL.
func (o *OpenAIUsecase) CreateImage(ctx context.Context, asset model.ImageAsset) (string, error) {
	resp, err := o.client.CreateImage(
		ctx, openai.ImageRequest{
			Prompt:         asset.Prompt,
			Model:          o.cfg.ImageModel,
			N:              1,
			Size:           asset.Size,
			Quality:        asset.Quality,
			Style:          asset.Style,
			ResponseFormat: openai.CreateImageResponseFormatURL,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create image %s: %w", asset.Name, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrImageNotGenerated
	}
	return resp.Data[0].URL, nil
}
