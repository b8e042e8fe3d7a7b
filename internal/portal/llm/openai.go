package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = float32(0.6)
)

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // empty keeps the public OpenAI endpoint
	Model       string
	Temperature float32
	HTTPClient  *http.Client
}

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
	configured  bool
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}

	return &OpenAI{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		configured:  cfg.APIKey != "",
	}
}

func (o *OpenAI) Configured() bool { return o.configured }

func (o *OpenAI) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	if !o.configured {
		return Completion{}, ErrUnconfigured
	}

	model := req.Model
	if model == "" {
		model = o.model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = o.temperature
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return Completion{}, fmt.Errorf("llm: upstream %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return Completion{}, fmt.Errorf("llm: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, ErrNoChoices
	}

	return Completion{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     int64(resp.Usage.PromptTokens),
			CompletionTokens: int64(resp.Usage.CompletionTokens),
			TotalTokens:      int64(resp.Usage.TotalTokens),
		},
	}, nil
}
