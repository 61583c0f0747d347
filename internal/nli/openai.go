package nli

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/ppiankov/nli-prover/internal/util"
)

// OpenAIBackend prompts an OpenAI chat model to act as an NLI classifier
type OpenAIBackend struct {
	client *openai.Client
	config model.NLIConfig
}

// NewOpenAIBackend creates a new OpenAI backend
func NewOpenAIBackend(cfg model.NLIConfig, httpCfg model.HTTPConfig) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", ErrModelUnavailable)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = util.NewHTTPClient(timeoutOf(cfg, 30*time.Second), httpCfg)

	return &OpenAIBackend{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the provider name
func (b *OpenAIBackend) Name() string {
	return "openai"
}

// IsAvailable checks the API key with a lightweight model listing
func (b *OpenAIBackend) IsAvailable(ctx context.Context) bool {
	_, err := b.client.ListModels(ctx)
	return err == nil
}

// Classify asks the chat model for the three probabilities
func (b *OpenAIBackend) Classify(ctx context.Context, premise, hypothesis string) (map[string]float64, error) {
	modelName := b.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(premise, hypothesis),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens: 100,
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseProbabilities(resp.Choices[0].Message.Content, b.config.LabelMap)
}
