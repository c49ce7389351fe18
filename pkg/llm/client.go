package llm

import (
	"context"
	"strings"
	"time"
)

// Completer sends one system + user prompt pair to a model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	ModelName() string
}

type UserProfile struct {
	Name              string
	Country           string
	InvestmentGoals   string
	RiskTolerance     string
	PreferredIndustry string
}

type SummaryInput struct {
	Headline    string
	Detail      string
	Publisher   string
	PublishedAt time.Time
	Symbols     []string
}

// NewCompleter picks the model backend by provider name, defaulting to OpenAI.
func NewCompleter(provider, openAIKey, anthropicKey string) Completer {
	if strings.EqualFold(provider, "anthropic") {
		return NewAnthropicClient(anthropicKey)
	}
	return NewOpenAIClient(openAIKey)
}
