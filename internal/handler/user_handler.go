package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/repository"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/validator"
)

// UserHandler handles user self-service endpoints: registration,
// login, verification, logout, and AI quota status.
type UserHandler struct {
	authService  *service.AuthService
	userService  *service.UserService
	quotaService *service.QuotaService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	authService *service.AuthService,
	userService *service.UserService,
	quotaService *service.QuotaService,
) *UserHandler {
	return &UserHandler{
		authService:  authService,
		userService:  userService,
		quotaService: quotaService,
	}
}

// Register godoc
// POST /api/users/register
// Creates a self-registered account and logs it in immediately.
// Duplicate usernames and PINs are reported separately here; login
// never discloses which credential failed.
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			response.Fail(c, http.StatusBadRequest, response.ErrUsernameExists)
		case errors.Is(err, repository.ErrPINTaken):
			response.Fail(c, http.StatusBadRequest, response.ErrPINExists)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	token, err := h.authService.IssueUserSession(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":         user,
		"sessionToken": token,
	})
}

// Login godoc
// POST /api/users/login
// Validates username + password + PIN. Any mismatch yields the same
// generic 401.
func (h *UserHandler) Login(c *gin.Context) {
	var req model.UserLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, token, err := h.authService.UserLogin(c.Request.Context(), req.Username, req.Password, req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         user,
		"sessionToken": token,
	})
}

// Verify godoc
// GET /api/users/verify
// Returns the user bound to the bearer token.
func (h *UserHandler) Verify(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Logout godoc
// POST /api/users/logout
// Revokes the presented session token; idempotent.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.authService.UserLogout(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out."})
}

// DailyCalls godoc
// GET /api/users/daily-calls
// Reports today's AI usage against the user's limit.
func (h *UserHandler) DailyCalls(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	status, err := h.quotaService.Status(c.Request.Context(), user)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// RecordCall godoc
// POST /api/users/record-call
// Increments today's AI call counter without gating. Unlimited users
// are a no-op.
func (h *UserHandler) RecordCall(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.quotaService.Record(c.Request.Context(), user); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Call recorded."})
}
