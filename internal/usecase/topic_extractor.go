package usecase

import (
	"context"
	"log/slog"
	"strings"

	"notes-orchestrator/internal/domain"
)

// maxTopicLength guards against the model answering in full sentences
// despite the extraction contract.
const maxTopicLength = 100

// TopicExtractor converts a free-form request into a short canonical topic
// string used to sharpen retrieval for derivative generators. Extraction is
// a precision optimization, not a correctness requirement: any failure falls
// back to the raw request, silently.
type TopicExtractor struct {
	generator *GuardedGenerator
	logger    *slog.Logger
}

func NewTopicExtractor(generator *GuardedGenerator, logger *slog.Logger) *TopicExtractor {
	return &TopicExtractor{generator: generator, logger: logger}
}

// Extract returns the canonical topic for the request, or the request
// verbatim when extraction fails or produces something unusable.
func (t *TopicExtractor) Extract(ctx context.Context, request string) string {
	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: topicExtractionContract},
		{Role: domain.RoleUser, Content: "Request: " + request + "\nTopic:"},
	}

	topic, err := t.generator.Generate(ctx, messages, 0)
	if err != nil {
		t.logger.Warn("topic_extraction_failed",
			slog.String("error", err.Error()),
		)
		return request
	}

	topic = strings.TrimSpace(topic)
	if topic == "" || len(topic) > maxTopicLength {
		t.logger.Debug("topic_extraction_fallback",
			slog.Int("extracted_length", len(topic)),
		)
		return request
	}
	return topic
}
