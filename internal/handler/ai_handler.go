package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/ai"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/quota"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/validator"
)

// AIHandler gates and serves AI answer explanations. Registered users
// spend a daily quota; anonymous callers share a per-IP sliding
// window. Quota is consumed before the upstream call and never
// refunded.
type AIHandler struct {
	client       *ai.Client
	limiter      *quota.Limiter
	quotaService *service.QuotaService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(client *ai.Client, limiter *quota.Limiter, quotaService *service.QuotaService) *AIHandler {
	return &AIHandler{
		client:       client,
		limiter:      limiter,
		quotaService: quotaService,
	}
}

// Explain godoc
// POST /api/ai/explain
func (h *AIHandler) Explain(c *gin.Context) {
	var req model.ExplainRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !h.client.Configured() {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrAINotConfigured)
		return
	}

	if user := middleware.GetUser(c); user != nil {
		if err := h.quotaService.Consume(c.Request.Context(), user); err != nil {
			var limitErr *service.DailyLimitError
			if errors.As(err, &limitErr) {
				response.FailWithMessage(c, http.StatusTooManyRequests, response.ErrDailyLimitExceeded, limitErr.Error())
				return
			}
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
	} else {
		if err := h.limiter.Allow(c.ClientIP(), time.Now()); err != nil {
			var winErr *quota.WindowError
			if errors.As(err, &winErr) {
				response.FailWithMessage(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded, winErr.Error())
				return
			}
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
	}

	explanation, err := h.client.Explain(c.Request.Context(), ai.ExplainInput{
		Question:         req.Question,
		UserAnswer:       req.UserAnswer,
		CorrectAnswer:    req.CorrectAnswer,
		Topic:            req.Topic,
		BasicExplanation: req.Explanation,
	})
	if err != nil {
		response.FailWithMessage(c, http.StatusBadGateway, response.ErrAIRequestFailed, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"explanation": explanation})
}
