package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"notes-orchestrator/internal/domain"
)

// RetryPolicy bounds the generator's resilience wrapping: how many attempts
// to make and how long to wait between them. The default backoff is the
// fixed linear 2s, 4s schedule; it applies uniformly to every failure cause
// because the chat provider's transient and permanent errors are
// indistinguishable to this client.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// DefaultRetryPolicy returns the production policy: 3 attempts, 2*attempt
// seconds between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(2*attempt) * time.Second
		},
	}
}

// ZeroDelayRetryPolicy keeps the attempt budget but removes the sleeps; for
// tests.
func ZeroDelayRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return 0 },
	}
}

// GuardedGenerator invokes the chat client with bounded retries. It is a
// pure pass-through apart from the retry wrapping; system contracts are
// supplied by callers and never modified here.
type GuardedGenerator struct {
	client domain.ChatClient
	policy RetryPolicy
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// GeneratorOption customizes a GuardedGenerator.
type GeneratorOption func(*GuardedGenerator)

// WithSleeper replaces the real timer, so tests can record sleeps instead of
// waiting on them.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) GeneratorOption {
	return func(g *GuardedGenerator) {
		g.sleep = sleep
	}
}

// NewGuardedGenerator wires a chat client with a retry policy.
func NewGuardedGenerator(client domain.ChatClient, policy RetryPolicy, logger *slog.Logger, opts ...GeneratorOption) *GuardedGenerator {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if policy.Backoff == nil {
		policy.Backoff = func(int) time.Duration { return 0 }
	}
	g := &GuardedGenerator{
		client: client,
		policy: policy,
		logger: logger,
		sleep:  sleepWithContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends the messages and returns the trimmed reply, retrying on any
// failure until the attempt budget runs out. Exhaustion raises a
// GenerationError wrapping the last failure.
func (g *GuardedGenerator) Generate(ctx context.Context, messages []domain.Message, temperature float64) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= g.policy.MaxAttempts; attempt++ {
		text, err := g.client.Chat(ctx, messages, temperature)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		lastErr = err

		g.logger.Warn("generation_attempt_failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", g.policy.MaxAttempts),
			slog.String("model", g.client.Version()),
			slog.String("error", err.Error()),
		)

		if attempt < g.policy.MaxAttempts {
			if sleepErr := g.sleep(ctx, g.policy.Backoff(attempt)); sleepErr != nil {
				lastErr = sleepErr
				break
			}
		}
	}

	return "", &domain.GenerationError{Attempts: g.policy.MaxAttempts, Err: lastErr}
}

// Version reports the underlying model version.
func (g *GuardedGenerator) Version() string {
	return g.client.Version()
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
