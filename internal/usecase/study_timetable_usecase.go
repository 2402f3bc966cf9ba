package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"notes-orchestrator/internal/domain"
)

const (
	timetableTemperature = 0.2
	defaultTimetableDays = 30
)

// StudyTimetableInput scopes the timetable to a class and a date window.
// StartDate defaults to tomorrow, Days to 30.
type StudyTimetableInput struct {
	ClassLevel string
	StartDate  string // ISO date (YYYY-MM-DD)
	Days       int
}

// PlanEntry is one day of the generated study calendar.
type PlanEntry struct {
	Date         string `json:"date"`
	Topic        string `json:"topic"`
	ActivityType string `json:"activity_type"`
	Description  string `json:"description"`
}

// StudyTimetableOutput carries the parsed calendar.
type StudyTimetableOutput struct {
	Plan []PlanEntry
}

// StudyTimetableUsecase builds a day-by-day study calendar from the full
// chapter list of a class scope. It diverges from the similarity-retrieval
// pattern: all rows for the scope are fetched, chapter labels deduplicated
// first-seen, and the whole topic list handed to the generator.
type StudyTimetableUsecase interface {
	Execute(ctx context.Context, input StudyTimetableInput) (*StudyTimetableOutput, error)
}

type studyTimetableUsecase struct {
	chunkRepo domain.NoteChunkRepository
	generator *GuardedGenerator
	logger    *slog.Logger
	now       func() time.Time
}

func NewStudyTimetableUsecase(
	chunkRepo domain.NoteChunkRepository,
	generator *GuardedGenerator,
	logger *slog.Logger,
) StudyTimetableUsecase {
	return &studyTimetableUsecase{
		chunkRepo: chunkRepo,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *studyTimetableUsecase) Execute(ctx context.Context, input StudyTimetableInput) (*StudyTimetableOutput, error) {
	refs, err := u.chunkRepo.ListChapterRefs(ctx, ScopeForClass(input.ClassLevel))
	if err != nil {
		return nil, &domain.RetrievalError{Err: err}
	}
	if len(refs) == 0 {
		return nil, &domain.EmptyCorpusError{ClassLevel: input.ClassLevel}
	}

	topics := topicsFromRefs(refs)

	startDate, err := u.resolveStartDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	days := input.Days
	if days <= 0 {
		days = defaultTimetableDays
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "START DATE: %s\nDAYS: %d\n\nTOPICS IN SYLLABUS ORDER:\n", startDate, days)
	for i, topic := range topics {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, topic)
	}

	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: timetableSystemContract},
		{Role: domain.RoleUser, Content: sb.String()},
	}

	raw, err := u.generator.Generate(ctx, messages, timetableTemperature)
	if err != nil {
		return nil, err
	}

	var plan []PlanEntry
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &plan); err != nil {
		return nil, &domain.MalformedOutputError{Err: err}
	}

	u.logger.Info("timetable_completed",
		slog.String("class_level", input.ClassLevel),
		slog.Int("topic_count", len(topics)),
		slog.Int("entry_count", len(plan)),
	)

	return &StudyTimetableOutput{Plan: plan}, nil
}

func (u *studyTimetableUsecase) resolveStartDate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return u.now().AddDate(0, 0, 1).Format("2006-01-02"), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", raw, err)
	}
	return parsed.Format("2006-01-02"), nil
}

// topicsFromRefs deduplicates chapter labels preserving first-seen order,
// falling back to deduplicated source-document names when no row carries
// chapter metadata.
func topicsFromRefs(refs []domain.ChapterRef) []string {
	var chapters []string
	for _, ref := range refs {
		if ref.Chapter == "" {
			continue
		}
		if !containsString(chapters, ref.Chapter) {
			chapters = append(chapters, ref.Chapter)
		}
	}
	if len(chapters) > 0 {
		return chapters
	}

	var documents []string
	for _, ref := range refs {
		if ref.SourceDocument == "" {
			continue
		}
		if !containsString(documents, ref.SourceDocument) {
			documents = append(documents, ref.SourceDocument)
		}
	}
	return documents
}
