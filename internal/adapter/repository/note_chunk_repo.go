package repository

import (
	"context"
	"fmt"

	"notes-orchestrator/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type noteChunkRepository struct {
	pool *pgxpool.Pool
}

// NewNoteChunkRepository creates a new NoteChunkRepository backed by
// Postgres/pgvector.
func NewNoteChunkRepository(pool *pgxpool.Pool) domain.NoteChunkRepository {
	return &noteChunkRepository{pool: pool}
}

type dbExecutor interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func (r *noteChunkRepository) executor() dbExecutor {
	return r.pool
}

// Search runs the similarity lookup. The store enforces both the threshold
// and the limit, and returns rows relevance-ordered; callers never re-rank.
func (r *noteChunkRepository) Search(ctx context.Context, q domain.SearchQuery) ([]domain.RetrievedMatch, error) {
	query := `
		SELECT id, content, COALESCE(chapter, ''), COALESCE(source_document, ''),
		       class_level, created_at,
		       1 - (embedding <=> $1) AS similarity
		FROM note_chunks
		WHERE ($2::text IS NULL OR class_level = $2)
		  AND 1 - (embedding <=> $1) >= $3
		ORDER BY embedding <=> $1
		LIMIT $4
	`

	rows, err := r.executor().Query(ctx, query,
		pgvector.NewVector(q.Embedding),
		nullableText(q.ClassLevel),
		q.MatchThreshold,
		q.MatchCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query note chunks: %w", err)
	}
	defer rows.Close()

	var matches []domain.RetrievedMatch
	for rows.Next() {
		var m domain.RetrievedMatch
		if err := rows.Scan(
			&m.Chunk.ID,
			&m.Chunk.Content,
			&m.Chunk.Chapter,
			&m.Chunk.SourceDocument,
			&m.Chunk.ClassLevel,
			&m.Chunk.CreatedAt,
			&m.Similarity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note chunk: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return matches, nil
}

// ListChapterRefs returns chapter/source pairs in insertion order for the
// timetable access path. Empty classLevel returns every row.
func (r *noteChunkRepository) ListChapterRefs(ctx context.Context, classLevel string) ([]domain.ChapterRef, error) {
	query := `
		SELECT COALESCE(chapter, ''), COALESCE(source_document, '')
		FROM note_chunks
		WHERE ($1::text IS NULL OR class_level = $1)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.executor().Query(ctx, query, nullableText(classLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter refs: %w", err)
	}
	defer rows.Close()

	var refs []domain.ChapterRef
	for rows.Next() {
		var ref domain.ChapterRef
		if err := rows.Scan(&ref.Chapter, &ref.SourceDocument); err != nil {
			return nil, fmt.Errorf("failed to scan chapter ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return refs, nil
}

func nullableText(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
