package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notes-orchestrator/internal/domain"
)

// groundedTaskParams parameterizes one derivative generation task: its fixed
// system contract, the label naming the request inside the user payload, and
// the retrieval/generation constants. Looser thresholds suit tasks needing
// broad coverage (answer keys); tighter ones suit focused output.
type groundedTaskParams struct {
	contract    string
	label       string
	threshold   float64
	matchCount  int
	temperature float64
}

// groundedTaskResult is the common shape of a derivative task before
// task-specific post-processing.
type groundedTaskResult struct {
	Text              string
	Sources           []string
	InjectionDetected bool
}

// groundedTaskRunner composes the shared stages of every derivative
// generator: guard, topic extraction, retrieval, context assembly, guarded
// generation. Retrieval uses the extracted topic; the generation payload
// keeps the user's original request so depth-scaling phrases survive.
type groundedTaskRunner struct {
	guard     domain.InjectionClassifier
	topics    *TopicExtractor
	retrieve  RetrieveNotesUsecase
	generator *GuardedGenerator
	logger    *slog.Logger
}

func (r *groundedTaskRunner) run(ctx context.Context, request, classLevel string, params groundedTaskParams) (*groundedTaskResult, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return nil, fmt.Errorf("request is required")
	}

	if decision := r.guard.Classify(request); decision.IsInjection {
		r.logger.Warn("injection_detected",
			slog.String("matched_pattern", decision.MatchedPattern),
			slog.String("task", params.label),
		)
		return &groundedTaskResult{
			Text:              RefusalAnswer,
			Sources:           []string{},
			InjectionDetected: true,
		}, nil
	}

	topic := r.topics.Extract(ctx, request)

	retrieved, err := r.retrieve.Execute(ctx, RetrieveNotesInput{
		Query:          topic,
		ClassLevel:     classLevel,
		MatchThreshold: params.threshold,
		MatchCount:     params.matchCount,
	})
	if err != nil {
		return nil, err
	}

	assembled := AssembleContext(retrieved.Matches)

	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: params.contract},
		{Role: domain.RoleUser, Content: buildContextPayload(assembled.ContextText, params.label, request)},
	}

	text, err := r.generator.Generate(ctx, messages, params.temperature)
	if err != nil {
		return nil, err
	}

	r.logger.Info("grounded_task_completed",
		slog.String("task", params.label),
		slog.String("retrieval_set_id", retrieved.RetrievalSetID),
		slog.String("topic", topic),
		slog.Int("source_count", len(assembled.Sources)),
	)

	sources := assembled.Sources
	if sources == nil {
		sources = []string{}
	}

	return &groundedTaskResult{
		Text:    text,
		Sources: sources,
	}, nil
}
