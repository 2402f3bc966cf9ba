package usecase

import (
	"strings"

	"notes-orchestrator/internal/domain"
)

// defaultInjectionPatterns is the versioned list of known adversarial phrase
// fragments. Matching is literal substring containment after lowercasing,
// not tokenized or fuzzy. The list intentionally errs toward false
// positives: leaking the system contract or generating off-corpus is worse
// than rejecting the occasional legitimate question.
var defaultInjectionPatterns = []string{
	"ignore previous", "ignore all previous", "disregard your instructions",
	"forget your instructions", "you are now", "act as", "pretend you are",
	"jailbreak", "override instructions", "your new instructions",
	"roleplay as", "bypass", "use your knowledge",
	"explain in detail even if not in notes", "add extra examples",
	"explain broadly", "use your own knowledge", "ignore rules",
	"forget everything", "new persona", "system prompt",
	"reveal your instructions", "what are your rules",
	"tell me your prompt", "show system message",
	"answer from internet", "search the web", "use google",
	"use wikipedia", "use external sources",
}

// SubstringGuard classifies requests by case-insensitive substring match
// against a fixed pattern list. Pure; safe for concurrent use.
type SubstringGuard struct {
	patterns []string
}

// NewSubstringGuard creates a guard with the built-in pattern list.
func NewSubstringGuard() *SubstringGuard {
	return NewSubstringGuardWithPatterns(defaultInjectionPatterns)
}

// NewSubstringGuardWithPatterns creates a guard with a caller-supplied
// pattern list, so the list can be versioned or replaced without touching
// pipeline logic.
func NewSubstringGuardWithPatterns(patterns []string) *SubstringGuard {
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return &SubstringGuard{patterns: lowered}
}

// Classify reports whether the text contains any configured pattern.
func (g *SubstringGuard) Classify(text string) domain.GuardDecision {
	lower := strings.ToLower(text)
	for _, pattern := range g.patterns {
		if strings.Contains(lower, pattern) {
			return domain.GuardDecision{IsInjection: true, MatchedPattern: pattern}
		}
	}
	return domain.GuardDecision{}
}

var _ domain.InjectionClassifier = (*SubstringGuard)(nil)
