package usecase

import (
	"strings"

	"notes-orchestrator/internal/domain"
)

// NoContextSentinel is the context value used when retrieval finds nothing.
// It is deliberately not an empty string: the generator's system contract
// must be able to tell "no grounding found" (refuse factual claims, still
// greet politely) from "empty question".
const NoContextSentinel = "NO CONTEXT RETRIEVED."

const chunkDelimiter = "\n\n---\n\n"

// AssembledContext is the bounded context block plus its citations.
type AssembledContext struct {
	ContextText string
	// Sources holds unique "chapter (source_document)" strings in first-seen
	// order across the matches.
	Sources []string
}

// AssembleContext concatenates matched chunk contents in retriever order and
// derives the deduplicated citation list. Chunk contents are NOT
// deduplicated; only citation keys are.
func AssembleContext(matches []domain.RetrievedMatch) AssembledContext {
	if len(matches) == 0 {
		return AssembledContext{ContextText: NoContextSentinel}
	}

	parts := make([]string, 0, len(matches))
	var sources []string
	for _, match := range matches {
		parts = append(parts, match.Chunk.Content)

		chapter := match.Chunk.Chapter
		if chapter == "" {
			chapter = "Unknown"
		}
		key := chapter + " (" + match.Chunk.SourceDocument + ")"
		if !containsString(sources, key) {
			sources = append(sources, key)
		}
	}

	return AssembledContext{
		ContextText: strings.Join(parts, chunkDelimiter),
		Sources:     sources,
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
