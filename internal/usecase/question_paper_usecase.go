package usecase

import (
	"context"
	"log/slog"

	"notes-orchestrator/internal/domain"
)

const (
	questionPaperMatchThreshold = 0.25
	questionPaperMatchCount     = 15
	questionPaperTemperature    = 0.3
)

// QuestionPaperInput is a free-form paper request scoped to a class level.
type QuestionPaperInput struct {
	Request    string
	ClassLevel string
}

// QuestionPaperOutput carries the generated paper with its provenance.
type QuestionPaperOutput struct {
	Questions         string
	Sources           []string
	InjectionDetected bool
}

// QuestionPaperUsecase generates an exam paper grounded in the indexed notes.
type QuestionPaperUsecase interface {
	Execute(ctx context.Context, input QuestionPaperInput) (*QuestionPaperOutput, error)
}

type questionPaperUsecase struct {
	runner groundedTaskRunner
}

func NewQuestionPaperUsecase(
	guard domain.InjectionClassifier,
	topics *TopicExtractor,
	retrieve RetrieveNotesUsecase,
	generator *GuardedGenerator,
	logger *slog.Logger,
) QuestionPaperUsecase {
	return &questionPaperUsecase{
		runner: groundedTaskRunner{
			guard:     guard,
			topics:    topics,
			retrieve:  retrieve,
			generator: generator,
			logger:    logger,
		},
	}
}

func (u *questionPaperUsecase) Execute(ctx context.Context, input QuestionPaperInput) (*QuestionPaperOutput, error) {
	result, err := u.runner.run(ctx, input.Request, input.ClassLevel, groundedTaskParams{
		contract:    questionPaperSystemContract,
		label:       "QUESTION PAPER REQUEST",
		threshold:   questionPaperMatchThreshold,
		matchCount:  questionPaperMatchCount,
		temperature: questionPaperTemperature,
	})
	if err != nil {
		return nil, err
	}
	return &QuestionPaperOutput{
		Questions:         result.Text,
		Sources:           result.Sources,
		InjectionDetected: result.InjectionDetected,
	}, nil
}
