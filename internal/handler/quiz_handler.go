package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/quiz"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/validator"
	"github.com/rs/zerolog"
)

// quizSessionHeader carries the anonymous quiz owner token. Logged-in
// users are keyed by user ID instead and never need it.
const quizSessionHeader = "X-Quiz-Session"

// QuizHandler exposes the quiz engine over REST. A caller owns at most
// one live quiz: authenticated users are keyed "user:<id>", anonymous
// callers "anon:<uuid>" via the X-Quiz-Session header.
type QuizHandler struct {
	engine          *quiz.Engine
	snapshots       *quiz.SnapshotStore
	questionService *service.QuestionService
	log             zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(
	engine *quiz.Engine,
	snapshots *quiz.SnapshotStore,
	questionService *service.QuestionService,
	log zerolog.Logger,
) *QuizHandler {
	return &QuizHandler{
		engine:          engine,
		snapshots:       snapshots,
		questionService: questionService,
		log:             log,
	}
}

// owner resolves the quiz owner key for this request. The second
// return is the anonymous session token to echo back, empty for
// authenticated callers.
func (h *QuizHandler) owner(c *gin.Context) (string, string) {
	if user := middleware.GetUser(c); user != nil {
		return fmt.Sprintf("user:%d", user.ID), ""
	}
	token := c.GetHeader(quizSessionHeader)
	if token == "" {
		return "", ""
	}
	return "anon:" + token, token
}

// view shapes a session for the wire, with the remaining clock
// computed against now.
func (h *QuizHandler) view(sess *quiz.Session, token string, now time.Time) gin.H {
	out := gin.H{
		"quiz":          sess,
		"timeRemaining": sess.Remaining(now),
	}
	if token != "" {
		out["quizSession"] = token
	}
	return out
}

// sync persists or clears the owner's snapshot to match the session
// state. Snapshot failures are logged, never surfaced; the live
// session is authoritative.
func (h *QuizHandler) sync(c *gin.Context, owner string, sess *quiz.Session, now time.Time) {
	var err error
	if sess.Status == quiz.StatusInProgress {
		err = h.snapshots.Save(c.Request.Context(), owner, sess, now)
	} else {
		err = h.snapshots.Clear(c.Request.Context(), owner)
	}
	if err != nil {
		h.log.Warn().Err(err).Str("owner", owner).Msg("quiz snapshot sync failed")
	}
}

// Start godoc
// POST /api/quiz/start
// Draws a fresh quiz, replacing any previous session for the owner.
// Anonymous callers without a session token get one minted here.
func (h *QuizHandler) Start(c *gin.Context) {
	var req model.StartQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	owner, token := h.owner(c)
	if owner == "" {
		token = uuid.New().String()
		owner = "anon:" + token
	}

	bank, err := h.questionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	now := time.Now()
	sess, err := h.engine.Start(owner, bank, req.QuestionCount, quiz.Mode(req.Mode), req.Persist, now)
	if err != nil {
		if errors.Is(err, quiz.ErrNoQuestions) {
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.sync(c, owner, sess, now)
	response.Success(c, http.StatusCreated, h.view(sess, token, now))
}

// Get godoc
// GET /api/quiz
// Returns the owner's live session, restoring a persisted snapshot
// when the in-memory one is gone (server restart, expiry sweep).
func (h *QuizHandler) Get(c *gin.Context) {
	owner, token := h.owner(c)
	if owner == "" {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveQuiz)
		return
	}

	now := time.Now()
	sess, err := h.engine.Get(owner, now)
	if err != nil {
		sess, err = h.restore(c, owner, now)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNoActiveQuiz)
			return
		}
	}

	h.sync(c, owner, sess, now)
	response.Success(c, http.StatusOK, h.view(sess, token, now))
}

// restore pulls a persisted snapshot back into the engine. Stale or
// absent snapshots surface as ErrNoActiveQuiz.
func (h *QuizHandler) restore(c *gin.Context, owner string, now time.Time) (*quiz.Session, error) {
	sess, err := h.snapshots.Load(c.Request.Context(), owner, now)
	if err != nil || sess == nil {
		return nil, quiz.ErrNoActiveQuiz
	}
	h.engine.Restore(owner, sess)
	return h.engine.Get(owner, now)
}

// Answer godoc
// POST /api/quiz/answer
func (h *QuizHandler) Answer(c *gin.Context) {
	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.mutate(c, func(owner string, now time.Time) (*quiz.Session, error) {
		return h.engine.Answer(owner, req.Option, now)
	})
}

// Next godoc
// POST /api/quiz/next
// Advancing past the final question completes the quiz; learn mode
// additionally requires the current question's feedback to be showing.
func (h *QuizHandler) Next(c *gin.Context) {
	h.mutate(c, h.engine.Next)
}

// Prev godoc
// POST /api/quiz/prev
func (h *QuizHandler) Prev(c *gin.Context) {
	h.mutate(c, h.engine.Prev)
}

// Submit godoc
// POST /api/quiz/submit
// Ends the quiz immediately and returns the scored result.
func (h *QuizHandler) Submit(c *gin.Context) {
	owner, token := h.owner(c)
	if owner == "" {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveQuiz)
		return
	}

	now := time.Now()
	sess, err := h.engine.Submit(owner, now)
	if err != nil {
		h.failQuiz(c, err)
		return
	}

	result, err := sess.Score()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.sync(c, owner, sess, now)
	out := h.view(sess, token, now)
	out["result"] = result
	response.Success(c, http.StatusOK, out)
}

// Exit godoc
// POST /api/quiz/exit
// Abandons the session and drops any snapshot. Always succeeds.
func (h *QuizHandler) Exit(c *gin.Context) {
	owner, _ := h.owner(c)
	if owner != "" {
		h.engine.Exit(owner)
		if err := h.snapshots.Clear(c.Request.Context(), owner); err != nil {
			h.log.Warn().Err(err).Str("owner", owner).Msg("quiz snapshot clear failed")
		}
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Quiz exited."})
}

// Result godoc
// GET /api/quiz/result
// Returns the scored result of a completed quiz.
func (h *QuizHandler) Result(c *gin.Context) {
	owner, _ := h.owner(c)
	if owner == "" {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveQuiz)
		return
	}

	now := time.Now()
	sess, err := h.engine.Get(owner, now)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveQuiz)
		return
	}

	result, err := sess.Score()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrNoActiveQuiz)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// mutate runs an engine transition for the owner and replies with the
// updated session, keeping the snapshot in step.
func (h *QuizHandler) mutate(c *gin.Context, op func(owner string, now time.Time) (*quiz.Session, error)) {
	owner, token := h.owner(c)
	if owner == "" {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveQuiz)
		return
	}

	now := time.Now()
	sess, err := op(owner, now)
	if err != nil {
		h.failQuiz(c, err)
		return
	}

	h.sync(c, owner, sess, now)
	response.Success(c, http.StatusOK, h.view(sess, token, now))
}

func (h *QuizHandler) failQuiz(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrNoActiveQuiz):
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveQuiz)
	case errors.Is(err, quiz.ErrQuizCompleted):
		response.Fail(c, http.StatusBadRequest, response.ErrQuizCompleted)
	case errors.Is(err, quiz.ErrFeedbackNotShown):
		response.Fail(c, http.StatusBadRequest, response.ErrFeedbackNeeded)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
