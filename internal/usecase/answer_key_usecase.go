package usecase

import (
	"context"
	"log/slog"

	"notes-orchestrator/internal/domain"
)

// Answer keys need the broadest coverage of any task, so the threshold is
// the loosest and the match count the largest.
const (
	answerKeyMatchThreshold = 0.2
	answerKeyMatchCount     = 20
	answerKeyTemperature    = 0.0
)

// AnswerKeyInput is a free-form answer-key request scoped to a class level.
type AnswerKeyInput struct {
	Request    string
	ClassLevel string
}

// AnswerKeyOutput carries the generated key with its provenance.
type AnswerKeyOutput struct {
	Answers           string
	Sources           []string
	InjectionDetected bool
}

// AnswerKeyUsecase generates a model answer key grounded in the indexed
// notes.
type AnswerKeyUsecase interface {
	Execute(ctx context.Context, input AnswerKeyInput) (*AnswerKeyOutput, error)
}

type answerKeyUsecase struct {
	runner groundedTaskRunner
}

func NewAnswerKeyUsecase(
	guard domain.InjectionClassifier,
	topics *TopicExtractor,
	retrieve RetrieveNotesUsecase,
	generator *GuardedGenerator,
	logger *slog.Logger,
) AnswerKeyUsecase {
	return &answerKeyUsecase{
		runner: groundedTaskRunner{
			guard:     guard,
			topics:    topics,
			retrieve:  retrieve,
			generator: generator,
			logger:    logger,
		},
	}
}

func (u *answerKeyUsecase) Execute(ctx context.Context, input AnswerKeyInput) (*AnswerKeyOutput, error) {
	result, err := u.runner.run(ctx, input.Request, input.ClassLevel, groundedTaskParams{
		contract:    answerKeySystemContract,
		label:       "ANSWER KEY REQUEST",
		threshold:   answerKeyMatchThreshold,
		matchCount:  answerKeyMatchCount,
		temperature: answerKeyTemperature,
	})
	if err != nil {
		return nil, err
	}
	return &AnswerKeyOutput{
		Answers:           result.Text,
		Sources:           result.Sources,
		InjectionDetected: result.InjectionDetected,
	}, nil
}
