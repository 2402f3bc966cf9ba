package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"notes-orchestrator/internal/domain"
)

const (
	slideDeckMatchThreshold = 0.3
	slideDeckMatchCount     = 12
	slideDeckTemperature    = 0.2
)

// SlideDeckInput is a free-form deck request scoped to a class level.
type SlideDeckInput struct {
	Request    string
	ClassLevel string
}

// Slide is one slide of the generated deck.
type Slide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// SlideDeckOutput is the parsed slide structure with its provenance. Binary
// presentation-file assembly belongs to the presentation layer, not here.
type SlideDeckOutput struct {
	Title             string
	Slides            []Slide
	Sources           []string
	InjectionDetected bool
}

// SlideDeckUsecase generates a structured slide deck grounded in the indexed
// notes.
type SlideDeckUsecase interface {
	Execute(ctx context.Context, input SlideDeckInput) (*SlideDeckOutput, error)
}

type slideDeckUsecase struct {
	runner groundedTaskRunner
}

func NewSlideDeckUsecase(
	guard domain.InjectionClassifier,
	topics *TopicExtractor,
	retrieve RetrieveNotesUsecase,
	generator *GuardedGenerator,
	logger *slog.Logger,
) SlideDeckUsecase {
	return &slideDeckUsecase{
		runner: groundedTaskRunner{
			guard:     guard,
			topics:    topics,
			retrieve:  retrieve,
			generator: generator,
			logger:    logger,
		},
	}
}

type slideDeckPayload struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

func (u *slideDeckUsecase) Execute(ctx context.Context, input SlideDeckInput) (*SlideDeckOutput, error) {
	result, err := u.runner.run(ctx, input.Request, input.ClassLevel, groundedTaskParams{
		contract:    slideDeckSystemContract,
		label:       "SLIDE DECK REQUEST",
		threshold:   slideDeckMatchThreshold,
		matchCount:  slideDeckMatchCount,
		temperature: slideDeckTemperature,
	})
	if err != nil {
		return nil, err
	}

	if result.InjectionDetected {
		return &SlideDeckOutput{
			Title:             RefusalAnswer,
			Sources:           result.Sources,
			InjectionDetected: true,
		}, nil
	}

	// Parse failure is not retried here: the generation call already spent
	// its own retry budget.
	var payload slideDeckPayload
	if err := json.Unmarshal([]byte(stripCodeFence(result.Text)), &payload); err != nil {
		return nil, &domain.MalformedOutputError{Err: err}
	}

	return &SlideDeckOutput{
		Title:   payload.Title,
		Slides:  payload.Slides,
		Sources: result.Sources,
	}, nil
}
