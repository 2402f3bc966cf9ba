package domain

import "fmt"

// EmbeddingError wraps a failure from the embedding backend. Embedding
// failures are treated as non-transient configuration or service problems
// and are never retried.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// RetrievalError wraps a failure from the vector store. Retrieval is never
// retried: a stale or partial result set could produce an under-grounded
// answer.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError is raised only after the guarded generator has exhausted
// its retry budget. It wraps the last failure.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedOutputError signals that generation succeeded but the structured
// output could not be parsed. Distinct from GenerationError so callers can
// tell "model unreachable" from "model answered but unusably". Never
// retried.
type MalformedOutputError struct {
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("generated output could not be parsed: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// EmptyCorpusError is raised by the study timetable generator when a class
// scope has zero indexed rows. Indexing must occur before a timetable can
// be generated.
type EmptyCorpusError struct {
	ClassLevel string
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("no indexed notes found for class %q: index the textbooks before generating a timetable", e.ClassLevel)
}
