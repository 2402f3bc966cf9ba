package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"notes-orchestrator/internal/adapter/groq"
	"notes-orchestrator/internal/adapter/ollama"
	"notes-orchestrator/internal/adapter/repository"
	"notes-orchestrator/internal/domain"
	"notes-orchestrator/internal/infra/config"
	"notes-orchestrator/internal/infra/httpclient"
	"notes-orchestrator/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Repositories
	ChunkRepo domain.NoteChunkRepository

	// External clients
	Embedder   domain.VectorEncoder
	ChatClient domain.ChatClient

	// Pipeline
	Guard     domain.InjectionClassifier
	Generator *usecase.GuardedGenerator

	// Usecases
	RetrieveUsecase      usecase.RetrieveNotesUsecase
	AskUsecase           usecase.AskNotesUsecase
	SummarizeUsecase     usecase.SummarizeUsecase
	TimetableUsecase     usecase.StudyTimetableUsecase
	LessonPlanUsecase    usecase.LessonPlanUsecase
	QuestionPaperUsecase usecase.QuestionPaperUsecase
	AnswerKeyUsecase     usecase.AnswerKeyUsecase
	SlideDeckUsecase     usecase.SlideDeckUsecase
}

// NewApplicationComponents wires all dependencies from config and database
// pool. Clients are shared across in-flight requests; every usecase is
// stateless beyond them.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *ApplicationComponents {
	// Repositories
	chunkRepo := repository.NewNoteChunkRepository(pool)

	// Shared HTTP clients with connection pooling
	embedderHTTP := httpclient.NewPooledClient(time.Duration(cfg.EmbedderTimeout) * time.Second)
	chatHTTP := httpclient.NewPooledClient(time.Duration(cfg.ChatTimeout) * time.Second)

	// External clients
	embedder := ollama.NewEmbedder(cfg.EmbedderURL, cfg.EmbeddingModel, embedderHTTP)
	chatClient := groq.NewChatClient(cfg.ChatURL, cfg.ChatAPIKey, cfg.ChatModel, chatHTTP, cfg.ChatRPS)

	// Pipeline components
	guard := usecase.NewSubstringGuard()
	generator := usecase.NewGuardedGenerator(chatClient, usecase.DefaultRetryPolicy(), log)
	topics := usecase.NewTopicExtractor(generator, log)

	// Usecases
	retrieveUsecase := usecase.NewRetrieveNotesUsecase(chunkRepo, embedder, log)
	askUsecase := usecase.NewAskNotesUsecase(guard, retrieveUsecase, generator, log)
	summarizeUsecase := usecase.NewSummarizeUsecase(generator, log)
	timetableUsecase := usecase.NewStudyTimetableUsecase(chunkRepo, generator, log)
	lessonPlanUsecase := usecase.NewLessonPlanUsecase(guard, topics, retrieveUsecase, generator, log)
	questionPaperUsecase := usecase.NewQuestionPaperUsecase(guard, topics, retrieveUsecase, generator, log)
	answerKeyUsecase := usecase.NewAnswerKeyUsecase(guard, topics, retrieveUsecase, generator, log)
	slideDeckUsecase := usecase.NewSlideDeckUsecase(guard, topics, retrieveUsecase, generator, log)

	return &ApplicationComponents{
		ChunkRepo:            chunkRepo,
		Embedder:             embedder,
		ChatClient:           chatClient,
		Guard:                guard,
		Generator:            generator,
		RetrieveUsecase:      retrieveUsecase,
		AskUsecase:           askUsecase,
		SummarizeUsecase:     summarizeUsecase,
		TimetableUsecase:     timetableUsecase,
		LessonPlanUsecase:    lessonPlanUsecase,
		QuestionPaperUsecase: questionPaperUsecase,
		AnswerKeyUsecase:     answerKeyUsecase,
		SlideDeckUsecase:     slideDeckUsecase,
	}
}
