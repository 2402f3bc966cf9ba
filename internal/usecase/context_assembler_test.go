package usecase_test

import (
	"testing"

	"notes-orchestrator/internal/domain"
	"notes-orchestrator/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestAssembleContext_EmptyMatches(t *testing.T) {
	assembled := usecase.AssembleContext(nil)

	assert.Equal(t, "NO CONTEXT RETRIEVED.", assembled.ContextText)
	assert.Empty(t, assembled.Sources)

	assembled = usecase.AssembleContext([]domain.RetrievedMatch{})
	assert.Equal(t, "NO CONTEXT RETRIEVED.", assembled.ContextText)
	assert.Empty(t, assembled.Sources)
}

func TestAssembleContext_ConcatenatesInOrder(t *testing.T) {
	matches := []domain.RetrievedMatch{
		matchWithContent("first chunk", "Tissues", "bio9.pdf"),
		matchWithContent("second chunk", "Tissues", "bio9.pdf"),
	}

	assembled := usecase.AssembleContext(matches)

	assert.Equal(t, "first chunk\n\n---\n\nsecond chunk", assembled.ContextText)
}

func TestAssembleContext_DeduplicatesSourcesNotContent(t *testing.T) {
	matches := []domain.RetrievedMatch{
		matchWithContent("same text", "Tissues", "bio9.pdf"),
		matchWithContent("same text", "Tissues", "bio9.pdf"),
	}

	assembled := usecase.AssembleContext(matches)

	// Duplicate content is kept; the citation appears once.
	assert.Equal(t, "same text\n\n---\n\nsame text", assembled.ContextText)
	assert.Equal(t, []string{"Tissues (bio9.pdf)"}, assembled.Sources)
}

func TestAssembleContext_SourcesFirstSeenOrder(t *testing.T) {
	matches := []domain.RetrievedMatch{
		matchWithContent("a", "Enzymes", "bio10.pdf"),
		matchWithContent("b", "Tissues", "bio9.pdf"),
		matchWithContent("c", "Enzymes", "bio10.pdf"),
	}

	assembled := usecase.AssembleContext(matches)

	assert.Equal(t, []string{"Enzymes (bio10.pdf)", "Tissues (bio9.pdf)"}, assembled.Sources)
}

func TestAssembleContext_MissingMetadata(t *testing.T) {
	matches := []domain.RetrievedMatch{
		matchWithContent("orphan text", "", ""),
	}

	assembled := usecase.AssembleContext(matches)

	assert.Equal(t, []string{"Unknown ()"}, assembled.Sources)
}
