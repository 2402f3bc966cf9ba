package domain

import (
	"context"
)

// VectorEncoder defines the interface for generating embeddings.
type VectorEncoder interface {
	// EncodeOne embeds a single text.
	EncodeOne(ctx context.Context, text string) ([]float32, error)
	// Encode embeds a batch of texts, preserving input order. Used by the
	// offline indexing tooling; the request pipeline embeds one query at a
	// time.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}
