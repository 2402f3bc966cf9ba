package notes_http

import (
	"context"
	"errors"
	"net/http"

	"notes-orchestrator/internal/domain"
	"notes-orchestrator/internal/infra/logger"
	"notes-orchestrator/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Handler exposes every task as a thin JSON endpoint. All pipeline logic
// lives in the usecases; this layer only binds requests and maps errors to
// human-readable messages that never reveal pattern lists, prompts, or stack
// traces.
type Handler struct {
	askUsecase           usecase.AskNotesUsecase
	summarizeUsecase     usecase.SummarizeUsecase
	timetableUsecase     usecase.StudyTimetableUsecase
	lessonPlanUsecase    usecase.LessonPlanUsecase
	questionPaperUsecase usecase.QuestionPaperUsecase
	answerKeyUsecase     usecase.AnswerKeyUsecase
	slideDeckUsecase     usecase.SlideDeckUsecase
	logs                 *logger.ContextLogger
}

func NewHandler(
	askUsecase usecase.AskNotesUsecase,
	summarizeUsecase usecase.SummarizeUsecase,
	timetableUsecase usecase.StudyTimetableUsecase,
	lessonPlanUsecase usecase.LessonPlanUsecase,
	questionPaperUsecase usecase.QuestionPaperUsecase,
	answerKeyUsecase usecase.AnswerKeyUsecase,
	slideDeckUsecase usecase.SlideDeckUsecase,
	logs *logger.ContextLogger,
) *Handler {
	return &Handler{
		askUsecase:           askUsecase,
		summarizeUsecase:     summarizeUsecase,
		timetableUsecase:     timetableUsecase,
		lessonPlanUsecase:    lessonPlanUsecase,
		questionPaperUsecase: questionPaperUsecase,
		answerKeyUsecase:     answerKeyUsecase,
		slideDeckUsecase:     slideDeckUsecase,
		logs:                 logs,
	}
}

// taskContext tags the request context with the business fields the logger
// attaches to every line produced for this request.
func (h *Handler) taskContext(ctx echo.Context, task, classLevel string) context.Context {
	reqCtx := logger.WithTask(ctx.Request().Context(), task)
	if requestID := ctx.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
		reqCtx = logger.WithRequestID(reqCtx, requestID)
	}
	if classLevel != "" {
		reqCtx = logger.WithClassLevel(reqCtx, classLevel)
	}
	return reqCtx
}

// Register wires all task routes onto the Echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/v1/notes/ask", h.Ask)
	e.POST("/v1/notes/summarize", h.Summarize)
	e.POST("/v1/notes/timetable", h.Timetable)
	e.POST("/v1/notes/lesson-plan", h.LessonPlan)
	e.POST("/v1/notes/question-paper", h.QuestionPaper)
	e.POST("/v1/notes/answer-key", h.AnswerKey)
	e.POST("/v1/notes/slides", h.Slides)
}

type askRequest struct {
	Question   string `json:"question"`
	ClassLevel string `json:"class_level"`
}

type askResponse struct {
	Answer            string   `json:"answer"`
	Sources           []string `json:"sources"`
	InjectionDetected bool     `json:"injection_detected"`
}

// Ask answers a student question strictly from the indexed notes.
// (POST /v1/notes/ask)
func (h *Handler) Ask(ctx echo.Context) error {
	var req askRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Question == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "question cannot be empty"})
	}

	reqCtx := h.taskContext(ctx, "ask", req.ClassLevel)
	output, err := h.askUsecase.Execute(reqCtx, usecase.AskNotesInput{
		Question:   req.Question,
		ClassLevel: req.ClassLevel,
	})
	if err != nil {
		return writeTaskError(ctx, err)
	}

	h.logs.WithContext(reqCtx).Info("task_completed")
	return ctx.JSON(http.StatusOK, askResponse{
		Answer:            output.Answer,
		Sources:           output.Sources,
		InjectionDetected: output.InjectionDetected,
	})
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

// Summarize produces a Markdown summary of user-provided text.
// (POST /v1/notes/summarize)
func (h *Handler) Summarize(ctx echo.Context) error {
	var req summarizeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Text == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "text cannot be empty"})
	}

	reqCtx := h.taskContext(ctx, "summarize", "")
	output, err := h.summarizeUsecase.Execute(reqCtx, usecase.SummarizeInput{Text: req.Text})
	if err != nil {
		return writeTaskError(ctx, err)
	}

	h.logs.WithContext(reqCtx).Info("task_completed")
	return ctx.JSON(http.StatusOK, summarizeResponse{
		Summary: output.Summary,
		Sources: output.Sources,
	})
}

type timetableRequest struct {
	ClassLevel string `json:"class_level"`
	StartDate  string `json:"start_date"`
	Days       int    `json:"days"`
}

type timetableResponse struct {
	Plan []usecase.PlanEntry `json:"plan"`
}

// Timetable builds a day-by-day study calendar for a class scope.
// (POST /v1/notes/timetable)
func (h *Handler) Timetable(ctx echo.Context) error {
	var req timetableRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	reqCtx := h.taskContext(ctx, "timetable", req.ClassLevel)
	output, err := h.timetableUsecase.Execute(reqCtx, usecase.StudyTimetableInput{
		ClassLevel: req.ClassLevel,
		StartDate:  req.StartDate,
		Days:       req.Days,
	})
	if err != nil {
		return writeTaskError(ctx, err)
	}

	h.logs.WithContext(reqCtx).Info("task_completed")
	return ctx.JSON(http.StatusOK, timetableResponse{Plan: output.Plan})
}

type derivativeRequest struct {
	Request    string `json:"request"`
	ClassLevel string `json:"class_level"`
}

type lessonPlanResponse struct {
	Plan              string   `json:"plan"`
	Sources           []string `json:"sources"`
	InjectionDetected bool     `json:"injection_detected"`
}

// LessonPlan generates a grounded lesson plan.
// (POST /v1/notes/lesson-plan)
func (h *Handler) LessonPlan(ctx echo.Context) error {
	var req derivativeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Request == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "request cannot be empty"})
	}

	reqCtx := h.taskContext(ctx, "lesson-plan", req.ClassLevel)
	output, err := h.lessonPlanUsecase.Execute(reqCtx, usecase.LessonPlanInput{
		Request:    req.Request,
		ClassLevel: req.ClassLevel,
	})
	if err != nil {
		return writeTaskError(ctx, err)
	}

	h.logs.WithContext(reqCtx).Info("task_completed")
	return ctx.JSON(http.StatusOK, lessonPlanResponse{
		Plan:              output.Plan,
		Sources:           output.Sources,
		InjectionDetected: output.InjectionDetected,
	})
}

type questionPaperResponse struct {
	Questions         string   `json:"questions"`
	Sources           []string `json:"sources"`
	InjectionDetected bool     `json:"injection_detected"`
}

// QuestionPaper generates a grounded exam paper.
// (POST /v1/notes/question-paper)
func (h *Handler) QuestionPaper(ctx echo.Context) error {
	var req derivativeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Request == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "request cannot be empty"})
	}

	reqCtx := h.taskContext(ctx, "question-paper", req.ClassLevel)
	output, err := h.questionPaperUsecase.Execute(reqCtx, usecase.QuestionPaperInput{
		Request:    req.Request,
		ClassLevel: req.ClassLevel,
	})
	if err != nil {
		return writeTaskError(ctx, err)
	}

	h.logs.WithContext(reqCtx).Info("task_completed")
	return ctx.JSON(http.StatusOK, questionPaperResponse{
		Questions:         output.Questions,
		Sources:           output.Sources,
		InjectionDetected: output.InjectionDetected,
	})
}

type answerKeyResponse struct {
	Answers           string   `json:"answers"`
	Sources           []string `json:"sources"`
	InjectionDetected bool     `json:"injection_detected"`
}

// AnswerKey generates a grounded model answer key.
// (POST /v1/notes/answer-key)
func (h *Handler) AnswerKey(ctx echo.Context) error {
	var req derivativeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Request == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "request cannot be empty"})
	}

	reqCtx := h.taskContext(ctx, "answer-key", req.ClassLevel)
	output, err := h.answerKeyUsecase.Execute(reqCtx, usecase.AnswerKeyInput{
		Request:    req.Request,
		ClassLevel: req.ClassLevel,
	})
	if err != nil {
		return writeTaskError(ctx, err)
	}

	h.logs.WithContext(reqCtx).Info("task_completed")
	return ctx.JSON(http.StatusOK, answerKeyResponse{
		Answers:           output.Answers,
		Sources:           output.Sources,
		InjectionDetected: output.InjectionDetected,
	})
}

type slideDeckResponse struct {
	Title             string          `json:"title"`
	Slides            []usecase.Slide `json:"slides"`
	Sources           []string        `json:"sources"`
	InjectionDetected bool            `json:"injection_detected"`
}

// Slides generates a grounded slide-deck structure.
// (POST /v1/notes/slides)
func (h *Handler) Slides(ctx echo.Context) error {
	var req derivativeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Request == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "request cannot be empty"})
	}

	reqCtx := h.taskContext(ctx, "slides", req.ClassLevel)
	output, err := h.slideDeckUsecase.Execute(reqCtx, usecase.SlideDeckInput{
		Request:    req.Request,
		ClassLevel: req.ClassLevel,
	})
	if err != nil {
		return writeTaskError(ctx, err)
	}

	slides := output.Slides
	if slides == nil {
		slides = []usecase.Slide{}
	}

	h.logs.WithContext(reqCtx).Info("task_completed")
	return ctx.JSON(http.StatusOK, slideDeckResponse{
		Title:             output.Title,
		Slides:            slides,
		Sources:           output.Sources,
		InjectionDetected: output.InjectionDetected,
	})
}

// writeTaskError maps the domain error taxonomy to distinct, human-readable
// messages.
func writeTaskError(ctx echo.Context, err error) error {
	var embErr *domain.EmbeddingError
	var retErr *domain.RetrievalError
	var genErr *domain.GenerationError
	var malErr *domain.MalformedOutputError
	var corpusErr *domain.EmptyCorpusError

	switch {
	case errors.As(err, &embErr):
		return ctx.JSON(http.StatusBadGateway, map[string]string{
			"error": "The question could not be processed by the embedding service. Please try again later.",
		})
	case errors.As(err, &retErr):
		return ctx.JSON(http.StatusBadGateway, map[string]string{
			"error": "The notes index could not be reached. Please try again later.",
		})
	case errors.As(err, &genErr):
		return ctx.JSON(http.StatusBadGateway, map[string]string{
			"error": "The answer service is temporarily unavailable. Please try again later.",
		})
	case errors.As(err, &malErr):
		return ctx.JSON(http.StatusBadGateway, map[string]string{
			"error": "The generated output could not be structured. Please try again.",
		})
	case errors.As(err, &corpusErr):
		return ctx.JSON(http.StatusConflict, map[string]string{
			"error": corpusErr.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "The request could not be completed.",
		})
	}
}
