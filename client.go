package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const requestTimeout = 60 * time.Second

const summarizerSystemPrompt = "You are a concise news editor. Follow the instructions in the prompt exactly and respond with the summary only."

// Summarizer produces a summary for a rendered prompt
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// NewSummarizer creates the client for the configured provider
func NewSummarizer(settings *Settings, apiKey string) (Summarizer, error) {
	switch settings.Provider {
	case "", "openai":
		return NewOpenAISummarizer(apiKey, settings), nil
	case "anthropic":
		return NewAnthropicSummarizer(apiKey, settings), nil
	default:
		return nil, errors.New("unknown provider: " + settings.Provider)
	}
}

// OpenAISummarizer calls the OpenAI chat completions API
type OpenAISummarizer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewOpenAISummarizer creates an OpenAI-backed summarizer
func NewOpenAISummarizer(apiKey string, settings *Settings) *OpenAISummarizer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAISummarizer{
		client:      &client,
		model:       settings.Model,
		maxTokens:   settings.MaxTokens,
		temperature: settings.Temperature,
	}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(s.model),
		MaxTokens:   openai.Int(int64(s.maxTokens)),
		Temperature: openai.Float(s.temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarizerSystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ServiceError{Err: errors.New("no response from openai")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classifyOpenAIError maps SDK failures onto the retry taxonomy
func classifyOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Err: err}
		case http.StatusTooManyRequests:
			return &RateLimitError{Err: err}
		}
	}

	return &ServiceError{Err: err}
}

// AnthropicSummarizer calls the Anthropic API through llmkit
type AnthropicSummarizer struct {
	apiKey   string
	settings types.RequestSettings
}

// NewAnthropicSummarizer creates an Anthropic-backed summarizer
func NewAnthropicSummarizer(apiKey string, settings *Settings) *AnthropicSummarizer {
	return &AnthropicSummarizer{
		apiKey: apiKey,
		settings: types.RequestSettings{
			Model:       settings.Model,
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.Temperature,
		},
	}
}

func (s *AnthropicSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	response, err := anthropic.PromptWithSettings(summarizerSystemPrompt, prompt, "", s.apiKey, s.settings)
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	if len(response.Content) == 0 {
		return "", &ServiceError{Err: errors.New("no content in response")}
	}

	return strings.TrimSpace(response.Content[0].Text), nil
}

// classifyAnthropicError maps llmkit failures onto the retry taxonomy.
// llmkit surfaces HTTP status in the error message, so match on that.
func classifyAnthropicError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "authentication"):
		return &AuthError{Err: err}
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return &RateLimitError{Err: err}
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return &TimeoutError{Err: err}
	}
	return &ServiceError{Err: err}
}
