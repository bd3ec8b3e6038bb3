package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ivmanto/site/internal/llm"
)

// IdeaGenerator produces blog post ideas for a topic. Every failure is
// reported as ErrIdeasUnavailable.
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, topic string) ([]Idea, error)
}

var (
	_ IdeaGenerator = (*Client)(nil)
	_ IdeaGenerator = (*LocalIdeas)(nil)
)

const ideasPrompt = `You are a world-class data strategy consultant. A potential client has provided the following topic: '%s'. Generate 3 to 5 creative and insightful blog post titles based on this topic. For each title, provide a compelling one-sentence summary. Format the output as a valid JSON array of objects, where each object has a "title" and a "summary" field. Do not include any other text or explanations outside of the JSON array.`

// ideasSchema constrains the structured response to an array of ideas.
var ideasSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"title":   map[string]any{"type": "STRING"},
			"summary": map[string]any{"type": "STRING"},
		},
		"required": []string{"title", "summary"},
	},
}

// LocalIdeas generates ideas in-process through the Gemini gateway. It serves
// /api/generate-ideas when no backend is configured.
type LocalIdeas struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewLocalIdeas creates an in-process idea generator.
func NewLocalIdeas(completer llm.Completer, logger *slog.Logger) *LocalIdeas {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalIdeas{completer: completer, logger: logger.With("service", "ideas")}
}

func (l *LocalIdeas) GenerateIdeas(ctx context.Context, topic string) ([]Idea, error) {
	l.logger.Info("Received topic for idea generation", "topic", topic)

	var ideas []Idea
	if err := l.completer.CompleteStructured(ctx, fmt.Sprintf(ideasPrompt, topic), ideasSchema, &ideas); err != nil {
		backendRequests.WithLabelValues("generate_ideas_local", "error").Inc()
		l.logger.Error("API Error in GenerateIdeas", "topic", topic, "error", err)
		return nil, ErrIdeasUnavailable
	}
	backendRequests.WithLabelValues("generate_ideas_local", "ok").Inc()
	return ideas, nil
}
