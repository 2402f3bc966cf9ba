package domain

import "context"

// SearchQuery carries the parameters for one similarity lookup against the
// vector store. Created per request, discarded after use.
type SearchQuery struct {
	Embedding      []float32
	MatchThreshold float64
	MatchCount     int
	// ClassLevel scopes the search to one class. Empty means unscoped; the
	// retrieval usecase translates "general" to empty before building the
	// query, so the repository never sees the sentinel value.
	ClassLevel string
}

// NoteChunkRepository defines read access to the indexed note chunks.
type NoteChunkRepository interface {
	// Search returns chunks whose similarity to the query embedding meets
	// the threshold, relevance-ordered, at most MatchCount rows.
	Search(ctx context.Context, query SearchQuery) ([]RetrievedMatch, error)

	// ListChapterRefs returns the chapter/source pairs for a class scope in
	// insertion order. Empty classLevel means all rows.
	ListChapterRefs(ctx context.Context, classLevel string) ([]ChapterRef, error)
}
