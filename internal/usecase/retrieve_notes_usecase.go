package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notes-orchestrator/internal/domain"

	"github.com/google/uuid"
)

// RetrieveNotesInput defines the parameters for one retrieval.
type RetrieveNotesInput struct {
	Query          string
	ClassLevel     string
	MatchThreshold float64
	MatchCount     int
}

// RetrieveNotesOutput carries the relevance-ordered matches plus an ID that
// correlates log lines across the pipeline stages of one request.
type RetrieveNotesOutput struct {
	Matches        []domain.RetrievedMatch
	RetrievalSetID string
}

// RetrieveNotesUsecase defines the interface for retrieving grounded context.
type RetrieveNotesUsecase interface {
	Execute(ctx context.Context, input RetrieveNotesInput) (*RetrieveNotesOutput, error)
}

type retrieveNotesUsecase struct {
	chunkRepo domain.NoteChunkRepository
	encoder   domain.VectorEncoder
	logger    *slog.Logger
}

// NewRetrieveNotesUsecase creates a new RetrieveNotesUsecase.
func NewRetrieveNotesUsecase(
	chunkRepo domain.NoteChunkRepository,
	encoder domain.VectorEncoder,
	logger *slog.Logger,
) RetrieveNotesUsecase {
	return &retrieveNotesUsecase{
		chunkRepo: chunkRepo,
		encoder:   encoder,
		logger:    logger,
	}
}

func (u *retrieveNotesUsecase) Execute(ctx context.Context, input RetrieveNotesInput) (*RetrieveNotesOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, fmt.Errorf("query is empty")
	}

	retrievalSetID := uuid.NewString()

	embedding, err := u.encoder.EncodeOne(ctx, input.Query)
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}

	matches, err := u.chunkRepo.Search(ctx, domain.SearchQuery{
		Embedding:      embedding,
		MatchThreshold: input.MatchThreshold,
		MatchCount:     input.MatchCount,
		ClassLevel:     ScopeForClass(input.ClassLevel),
	})
	if err != nil {
		return nil, &domain.RetrievalError{Err: err}
	}

	u.logger.Info("retrieval_completed",
		slog.String("retrieval_set_id", retrievalSetID),
		slog.Int("match_count", len(matches)),
		slog.Float64("threshold", input.MatchThreshold),
		slog.String("class_level", input.ClassLevel),
	)

	return &RetrieveNotesOutput{
		Matches:        matches,
		RetrievalSetID: retrievalSetID,
	}, nil
}

// ScopeForClass translates the class-level request field into a store scope:
// "general" (or unset) means no scope restriction. The filter is an
// inclusion predicate, never a literal match against the sentinel value.
func ScopeForClass(classLevel string) string {
	trimmed := strings.TrimSpace(classLevel)
	if trimmed == "" || strings.EqualFold(trimmed, domain.ClassLevelGeneral) {
		return ""
	}
	return trimmed
}
