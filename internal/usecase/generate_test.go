package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"notes-orchestrator/internal/domain"
	"notes-orchestrator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func recordingSleeper(sleeps *[]time.Duration) usecase.GeneratorOption {
	return usecase.WithSleeper(func(_ context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	})
}

func TestGuardedGenerator_SucceedsFirstAttempt(t *testing.T) {
	ctx := context.Background()
	mockLLM := new(mockChatClient)
	mockLLM.On("Chat", mock.Anything, mock.Anything, 0.0).Return("  the answer  ", nil).Once()

	var sleeps []time.Duration
	gen := usecase.NewGuardedGenerator(mockLLM, usecase.DefaultRetryPolicy(), testLogger(), recordingSleeper(&sleeps))

	text, err := gen.Generate(ctx, []domain.Message{{Role: domain.RoleUser, Content: "hi"}}, 0.0)

	assert.NoError(t, err)
	assert.Equal(t, "the answer", text)
	assert.Empty(t, sleeps)
	mockLLM.AssertNumberOfCalls(t, "Chat", 1)
}

func TestGuardedGenerator_RecoversOnThirdAttempt(t *testing.T) {
	ctx := context.Background()
	mockLLM := new(mockChatClient)
	mockLLM.On("Chat", mock.Anything, mock.Anything, 0.0).Return("", errors.New("rate limited")).Twice()
	mockLLM.On("Chat", mock.Anything, mock.Anything, 0.0).Return("recovered", nil).Once()

	var sleeps []time.Duration
	gen := usecase.NewGuardedGenerator(mockLLM, usecase.DefaultRetryPolicy(), testLogger(), recordingSleeper(&sleeps))

	text, err := gen.Generate(ctx, []domain.Message{{Role: domain.RoleUser, Content: "q"}}, 0.0)

	assert.NoError(t, err)
	assert.Equal(t, "recovered", text)
	// Linear backoff: 2 units after attempt 1, 4 units after attempt 2.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, sleeps)
	mockLLM.AssertNumberOfCalls(t, "Chat", 3)
}

func TestGuardedGenerator_ExhaustsBudget(t *testing.T) {
	ctx := context.Background()
	mockLLM := new(mockChatClient)
	lastFailure := errors.New("still down")
	mockLLM.On("Chat", mock.Anything, mock.Anything, 0.0).Return("", lastFailure).Times(3)

	var sleeps []time.Duration
	gen := usecase.NewGuardedGenerator(mockLLM, usecase.DefaultRetryPolicy(), testLogger(), recordingSleeper(&sleeps))

	_, err := gen.Generate(ctx, []domain.Message{{Role: domain.RoleUser, Content: "q"}}, 0.0)

	var genErr *domain.GenerationError
	assert.ErrorAs(t, err, &genErr)
	assert.Equal(t, 3, genErr.Attempts)
	assert.ErrorIs(t, err, lastFailure)
	// No 4th call, no sleep after the final attempt.
	mockLLM.AssertNumberOfCalls(t, "Chat", 3)
	assert.Len(t, sleeps, 2)
}

func TestGuardedGenerator_ZeroDelayPolicy(t *testing.T) {
	ctx := context.Background()
	mockLLM := new(mockChatClient)
	mockLLM.On("Chat", mock.Anything, mock.Anything, 0.5).Return("", errors.New("boom")).Times(3)

	gen := usecase.NewGuardedGenerator(mockLLM, usecase.ZeroDelayRetryPolicy(), testLogger())

	start := time.Now()
	_, err := gen.Generate(ctx, []domain.Message{{Role: domain.RoleUser, Content: "q"}}, 0.5)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
