package usecase

import (
	"context"
	"log/slog"

	"notes-orchestrator/internal/domain"
)

const (
	lessonPlanMatchThreshold = 0.25
	lessonPlanMatchCount     = 10
	lessonPlanTemperature    = 0.2
)

// LessonPlanInput is a free-form lesson request scoped to a class level.
type LessonPlanInput struct {
	Request    string
	ClassLevel string
}

// LessonPlanOutput carries the generated plan with its provenance.
type LessonPlanOutput struct {
	Plan              string
	Sources           []string
	InjectionDetected bool
}

// LessonPlanUsecase generates a lesson plan grounded in the indexed notes.
type LessonPlanUsecase interface {
	Execute(ctx context.Context, input LessonPlanInput) (*LessonPlanOutput, error)
}

type lessonPlanUsecase struct {
	runner groundedTaskRunner
}

func NewLessonPlanUsecase(
	guard domain.InjectionClassifier,
	topics *TopicExtractor,
	retrieve RetrieveNotesUsecase,
	generator *GuardedGenerator,
	logger *slog.Logger,
) LessonPlanUsecase {
	return &lessonPlanUsecase{
		runner: groundedTaskRunner{
			guard:     guard,
			topics:    topics,
			retrieve:  retrieve,
			generator: generator,
			logger:    logger,
		},
	}
}

func (u *lessonPlanUsecase) Execute(ctx context.Context, input LessonPlanInput) (*LessonPlanOutput, error) {
	result, err := u.runner.run(ctx, input.Request, input.ClassLevel, groundedTaskParams{
		contract:    lessonPlanSystemContract,
		label:       "LESSON PLAN REQUEST",
		threshold:   lessonPlanMatchThreshold,
		matchCount:  lessonPlanMatchCount,
		temperature: lessonPlanTemperature,
	})
	if err != nil {
		return nil, err
	}
	return &LessonPlanOutput{
		Plan:              result.Text,
		Sources:           result.Sources,
		InjectionDetected: result.InjectionDetected,
	}, nil
}
