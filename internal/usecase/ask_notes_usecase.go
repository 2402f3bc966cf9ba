package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notes-orchestrator/internal/domain"
)

// Retrieval parameters for the primary Q&A task: a tight threshold and a
// small match count keep the context focused on the question.
const (
	askMatchThreshold = 0.3
	askMatchCount     = 7
	askTemperature    = 0.0
)

// AskNotesInput is a student question scoped to a class level.
type AskNotesInput struct {
	Question   string
	ClassLevel string
}

// AskNotesOutput is the externally visible Q&A contract.
type AskNotesOutput struct {
	Answer            string
	Sources           []string
	InjectionDetected bool
}

// AskNotesUsecase answers a question strictly from the indexed notes.
type AskNotesUsecase interface {
	Execute(ctx context.Context, input AskNotesInput) (*AskNotesOutput, error)
}

type askNotesUsecase struct {
	guard     domain.InjectionClassifier
	retrieve  RetrieveNotesUsecase
	generator *GuardedGenerator
	logger    *slog.Logger
}

// NewAskNotesUsecase wires the guard, retrieval, and guarded generation
// stages of the Q&A pipeline.
func NewAskNotesUsecase(
	guard domain.InjectionClassifier,
	retrieve RetrieveNotesUsecase,
	generator *GuardedGenerator,
	logger *slog.Logger,
) AskNotesUsecase {
	return &askNotesUsecase{
		guard:     guard,
		retrieve:  retrieve,
		generator: generator,
		logger:    logger,
	}
}

func (u *askNotesUsecase) Execute(ctx context.Context, input AskNotesInput) (*AskNotesOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	// The guard runs before any external call: a rejected request must not
	// spend an embedding or generation call.
	if decision := u.guard.Classify(question); decision.IsInjection {
		u.logger.Warn("injection_detected",
			slog.String("matched_pattern", decision.MatchedPattern),
			slog.String("class_level", input.ClassLevel),
		)
		return &AskNotesOutput{
			Answer:            RefusalAnswer,
			Sources:           []string{},
			InjectionDetected: true,
		}, nil
	}

	retrieved, err := u.retrieve.Execute(ctx, RetrieveNotesInput{
		Query:          question,
		ClassLevel:     input.ClassLevel,
		MatchThreshold: askMatchThreshold,
		MatchCount:     askMatchCount,
	})
	if err != nil {
		return nil, err
	}

	// Empty retrieval still goes to the generator: the system contract
	// handles greetings conversationally and refuses factual claims when
	// the context is the sentinel.
	assembled := AssembleContext(retrieved.Matches)

	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: notesSystemContract},
		{Role: domain.RoleUser, Content: buildContextPayload(assembled.ContextText, "STUDENT QUESTION", question)},
	}

	answer, err := u.generator.Generate(ctx, messages, askTemperature)
	if err != nil {
		return nil, err
	}

	u.logger.Info("ask_completed",
		slog.String("retrieval_set_id", retrieved.RetrievalSetID),
		slog.Int("source_count", len(assembled.Sources)),
	)

	sources := assembled.Sources
	if sources == nil {
		sources = []string{}
	}

	return &AskNotesOutput{
		Answer:            answer,
		Sources:           sources,
		InjectionDetected: false,
	}, nil
}
