package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ClassLevelGeneral marks a chunk (or a request) that is not scoped to a
// single class level. A request with this scope is retrieved unscoped.
const ClassLevelGeneral = "general"

// NoteChunk is one indexed passage of textbook text. Chunks are written by
// the offline indexing pipeline and never mutated by this service.
type NoteChunk struct {
	ID             uuid.UUID
	Content        string
	Chapter        string
	SourceDocument string
	ClassLevel     string
	Embedding      pgvector.Vector
	CreatedAt      time.Time
}

// RetrievedMatch is a chunk returned by similarity search together with the
// store-computed score. The score is used for threshold filtering only; the
// pipeline never re-ranks.
type RetrievedMatch struct {
	Chunk      NoteChunk
	Similarity float64
}

// ChapterRef is the chapter/source pair used by the full-table access path
// of the study timetable generator.
type ChapterRef struct {
	Chapter        string
	SourceDocument string
}
