package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainProvider implements the Provider interface on top of a
// langchaingo model.
type LangChainProvider struct {
	model       llms.LLM
	temperature float64
}

// NewLangChainProvider initializes an OpenAI-backed langchaingo provider.
func NewLangChainProvider(apiKey, model string) (*LangChainProvider, error) {
	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &LangChainProvider{
		model:       llm,
		temperature: 0.2,
	}, nil
}

// Complete implements the Provider interface. Messages are folded into a
// single prompt; the advisor exchange is one system instruction plus one
// user request.
func (p *LangChainProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	var prompt strings.Builder
	for _, msg := range messages {
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n\n")
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt.String(),
		llms.WithTemperature(p.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	return response, nil
}
