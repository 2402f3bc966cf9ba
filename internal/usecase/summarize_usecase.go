package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notes-orchestrator/internal/domain"
)

const summarizeTemperature = 0.0

// SummarizeInput is free text supplied by the user; summarization operates
// over uncurated input and involves no retrieval.
type SummarizeInput struct {
	Text string
}

// SummarizeOutput carries the summary. Sources is always empty: there is no
// grounding set to cite.
type SummarizeOutput struct {
	Summary string
	Sources []string
}

// SummarizeUsecase produces a structured Markdown summary of arbitrary text.
type SummarizeUsecase interface {
	Execute(ctx context.Context, input SummarizeInput) (*SummarizeOutput, error)
}

type summarizeUsecase struct {
	generator *GuardedGenerator
	logger    *slog.Logger
}

func NewSummarizeUsecase(generator *GuardedGenerator, logger *slog.Logger) SummarizeUsecase {
	return &summarizeUsecase{generator: generator, logger: logger}
}

func (u *summarizeUsecase) Execute(ctx context.Context, input SummarizeInput) (*SummarizeOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: summarySystemContract},
		{Role: domain.RoleUser, Content: "Summarize the following content:\n\n" + text},
	}

	summary, err := u.generator.Generate(ctx, messages, summarizeTemperature)
	if err != nil {
		return nil, err
	}

	u.logger.Info("summarize_completed",
		slog.Int("input_length", len(text)),
	)

	return &SummarizeOutput{
		Summary: summary,
		Sources: []string{},
	}, nil
}
