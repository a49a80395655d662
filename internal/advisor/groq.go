package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	requestTimeout = 30 * time.Second
	temperature    = 0.3
)

// GroqAdvisor asks a Groq-hosted chat model. Groq speaks the OpenAI wire
// protocol, so the stock client works with a swapped base URL.
type GroqAdvisor struct {
	client *openai.Client
	model  string
}

func NewGroqAdvisor(apiKey, baseURL, model string) *GroqAdvisor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &GroqAdvisor{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (a *GroqAdvisor) Advise(ctx context.Context, question string, snapshot Snapshot) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(question, snapshot)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	slog.InfoContext(ctx, "Advisor response received",
		"model", a.model,
		"duration", time.Since(start),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}
