package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const maxDetailChars = 200

var errEmptyReply = errors.New("empty reply from model")

// Writer produces the copy for the welcome and digest e-mails.
type Writer struct {
	completer Completer
}

func NewWriter(completer Completer) *Writer {
	return &Writer{completer: completer}
}

func (w *Writer) ModelName() string {
	return w.completer.ModelName()
}

func (w *Writer) WelcomeIntro(ctx context.Context, profile UserProfile) (string, error) {
	reply, err := w.completer.Complete(ctx, welcomeIntroPrompt, formatProfile(profile))
	if err != nil {
		return "", err
	}

	reply = cleanTextResponse(reply)
	if reply == "" {
		return "", errEmptyReply
	}
	return reply, nil
}

func (w *Writer) NewsSummary(ctx context.Context, articles []SummaryInput) (string, error) {
	if len(articles) == 0 {
		return "", fmt.Errorf("no articles to summarize")
	}

	reply, err := w.completer.Complete(ctx, newsSummaryPrompt, formatArticles(articles))
	if err != nil {
		return "", err
	}

	reply = cleanTextResponse(reply)
	if reply == "" {
		return "", errEmptyReply
	}
	return reply, nil
}

func formatProfile(p UserProfile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("- Name: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("- Country: %s\n", p.Country))
	sb.WriteString(fmt.Sprintf("- Investment goals: %s\n", p.InvestmentGoals))
	sb.WriteString(fmt.Sprintf("- Risk tolerance: %s\n", p.RiskTolerance))
	sb.WriteString(fmt.Sprintf("- Preferred industry: %s\n", p.PreferredIndustry))
	return sb.String()
}

// truncate cuts s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func formatArticles(articles []SummaryInput) string {
	var sb strings.Builder
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("[%d] Headline: %s\n", i, a.Headline))
		sb.WriteString(fmt.Sprintf("    Summary: %s\n", truncate(a.Detail, maxDetailChars)))
		sb.WriteString(fmt.Sprintf("    Publisher: %s\n", a.Publisher))
		sb.WriteString(fmt.Sprintf("    Published: %s\n", a.PublishedAt.Format("2006-01-02 15:04")))
		if len(a.Symbols) > 0 {
			sb.WriteString(fmt.Sprintf("    Symbols: %s\n", strings.Join(a.Symbols, ", ")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// cleanTextResponse drops code fences some models wrap around plain text.
func cleanTextResponse(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if nl := strings.Index(content, "\n"); nl >= 0 {
			content = content[nl+1:]
		} else {
			content = strings.TrimPrefix(content, "```")
		}
	}
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
