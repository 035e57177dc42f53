package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/database"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/rs/zerolog"
)

// SystemHandler handles operational endpoints: health and the
// idempotent schema bootstrap.
type SystemHandler struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(cfg *config.Config, pool *pgxpool.Pool, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{cfg: cfg, pool: pool, log: log}
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

// InitDB godoc
// POST /api/init-db
// Creates all tables and indexes if missing and seeds a default admin
// when none exists. Safe to call repeatedly. When INIT_SECRET is set,
// the X-Init-Secret header must match.
func (h *SystemHandler) InitDB(c *gin.Context) {
	if h.cfg.InitSecret != "" && c.GetHeader("X-Init-Secret") != h.cfg.InitSecret {
		response.Fail(c, http.StatusUnauthorized, response.ErrInitSecretInvalid)
		return
	}

	seeded, err := database.InitSchema(c.Request.Context(), h.pool, h.log)
	if err != nil {
		h.log.Error().Err(err).Msg("schema bootstrap failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Database initialized.",
		"seededAdmin": seeded,
	})
}
