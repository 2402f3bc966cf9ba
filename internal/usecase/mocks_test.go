package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"notes-orchestrator/internal/domain"
	"notes-orchestrator/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockChatClient struct {
	mock.Mock
}

func (m *mockChatClient) Chat(ctx context.Context, messages []domain.Message, temperature float64) (string, error) {
	args := m.Called(ctx, messages, temperature)
	return args.String(0), args.Error(1)
}

func (m *mockChatClient) Version() string {
	return "mock-model"
}

type mockVectorEncoder struct {
	mock.Mock
}

func (m *mockVectorEncoder) EncodeOne(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *mockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *mockVectorEncoder) Version() string {
	return "mock-encoder"
}

type mockNoteChunkRepository struct {
	mock.Mock
}

func (m *mockNoteChunkRepository) Search(ctx context.Context, query domain.SearchQuery) ([]domain.RetrievedMatch, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievedMatch), args.Error(1)
}

func (m *mockNoteChunkRepository) ListChapterRefs(ctx context.Context, classLevel string) ([]domain.ChapterRef, error) {
	args := m.Called(ctx, classLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChapterRef), args.Error(1)
}

type mockRetrieveNotesUsecase struct {
	mock.Mock
}

func (m *mockRetrieveNotesUsecase) Execute(ctx context.Context, input usecase.RetrieveNotesInput) (*usecase.RetrieveNotesOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RetrieveNotesOutput), args.Error(1)
}

// matchWithContent builds a RetrievedMatch for assembly-oriented tests.
func matchWithContent(content, chapter, source string) domain.RetrievedMatch {
	return domain.RetrievedMatch{
		Chunk: domain.NoteChunk{
			Content:        content,
			Chapter:        chapter,
			SourceDocument: source,
		},
		Similarity: 0.9,
	}
}
