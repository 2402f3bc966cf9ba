package domain

// GuardDecision is the result of classifying a raw request. Computed per
// request, never persisted.
type GuardDecision struct {
	IsInjection bool
	// MatchedPattern is the first pattern that matched, kept for audit
	// logging. Empty when IsInjection is false.
	MatchedPattern string
}

// InjectionClassifier decides whether a raw request attempts to override the
// system contract. Implementations must be pure and safe for concurrent use:
// the classifier runs before any external call is made.
type InjectionClassifier interface {
	Classify(text string) GuardDecision
}
