// Package controller holds the HTTP handlers. Every handler follows the same
// shape: resolve the session user, validate the request fields, run one unit
// of work against the store, answer JSON. Validation failures are 400 with a
// message, absent-or-foreign rows are 404 (never distinguished), anything
// else propagates as 500.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"planera/internal/cache"
	"planera/internal/database"
	"planera/internal/repository"
	"planera/internal/session"
	"planera/pkg/logger"
)

// Handlers carries the request-independent dependencies into each handler.
type Handlers struct {
	store    *database.Store
	cache    *cache.Cache
	sessions *session.Manager

	weekGroup singleflight.Group
}

func New(store *database.Store, c *cache.Cache, sessions *session.Manager) *Handlers {
	return &Handlers{store: store, cache: c, sessions: sessions}
}

// begin opens the request's unit of work; on failure it answers 500 and
// returns false.
func (h *Handlers) begin(c *gin.Context) (*database.UnitOfWork, bool) {
	uow, err := h.store.Begin(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Begin unit of work failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return nil, false
	}
	return uow, true
}

// commit finalizes the unit of work; on failure it answers 500 and returns
// false.
func (h *Handlers) commit(c *gin.Context, uow *database.UnitOfWork) bool {
	if err := uow.Commit(); err != nil {
		logger.Error(c.Request.Context(), "Commit failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return false
	}
	return true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// fail maps a repository error onto the response taxonomy.
func fail(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	logger.Error(c.Request.Context(), "Request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
}
