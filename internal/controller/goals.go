package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"planera/internal/middleware"
	"planera/internal/models"
	"planera/internal/repository"
)

// ListGoals returns the user's goals ordered by position, newest first within
// the same position.
func (h *Handlers) ListGoals(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	goals, err := repository.ListGoals(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, goals)
}

type goalRequest struct {
	Description *string `json:"description"`
	Category    *int64  `json:"category"`
	Completed   *bool   `json:"completed"`
	DueDate     *string `json:"due_date"`
	Order       *int    `json:"order"`
}

func parseOptionalDate(s *string) *models.Date {
	if s == nil || *s == "" {
		return nil
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

// CreateGoal appends a goal at the end of the list. When the requested
// category is absent or foreign the goal falls back to the user's first
// category.
func (h *Handlers) CreateGoal(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var body goalRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Description == nil {
		badRequest(c, "Descripción requerida")
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	var category *models.Category
	if body.Category != nil {
		var err error
		category, err = repository.GetCategory(ctx, uow, userID, *body.Category)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			fail(c, err, "")
			return
		}
	}
	if category == nil {
		var err error
		category, err = repository.FirstCategory(ctx, uow, userID)
		if err != nil {
			fail(c, err, "")
			return
		}
	}
	last, err := repository.MaxGoalOrder(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}

	goal := models.Goal{
		UserID:      userID,
		Description: strings.TrimSpace(*body.Description),
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
		DueDate:     parseOptionalDate(body.DueDate),
		Order:       last + 1,
	}
	if category != nil {
		goal.CategoryID = &category.ID
		goal.CategoryName = &category.Name
	}
	if err := repository.CreateGoal(ctx, uow, &goal); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// UpdateGoal applies a partial patch. due_date is reassigned from the request
// on every call, so omitting it clears the stored value.
func (h *Handlers) UpdateGoal(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meta no encontrada"})
		return
	}
	var body goalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	goal, err := repository.GetGoal(ctx, uow, userID, id)
	if err != nil {
		fail(c, err, "Meta no encontrada")
		return
	}

	if body.Description != nil {
		goal.Description = strings.TrimSpace(*body.Description)
	}
	if body.Category != nil {
		category, err := repository.GetCategory(ctx, uow, userID, *body.Category)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			fail(c, err, "")
			return
		}
		if category != nil {
			goal.CategoryID = &category.ID
			goal.CategoryName = &category.Name
		} else {
			goal.CategoryID = nil
			goal.CategoryName = nil
		}
	}
	if body.Completed != nil {
		goal.Completed = *body.Completed
	}
	goal.DueDate = parseOptionalDate(body.DueDate)
	if body.Order != nil {
		goal.Order = *body.Order
	}

	if err := repository.UpdateGoal(ctx, uow, goal); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *Handlers) DeleteGoal(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meta no encontrada"})
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.DeleteGoal(ctx, uow, userID, id); err != nil {
		fail(c, err, "Meta no encontrada")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meta eliminada"})
}

type goalOrderItem struct {
	ID    *int64 `json:"id"`
	Order *int   `json:"order"`
}

// ReorderGoals rewrites list positions in bulk. Items with missing fields or
// unknown ids are skipped rather than failing the batch.
func (h *Handlers) ReorderGoals(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var items []goalOrderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		badRequest(c, "Datos inválidos, se esperaba lista")
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	for _, item := range items {
		if item.ID == nil || item.Order == nil {
			continue
		}
		if err := repository.SetGoalOrder(ctx, uow, userID, *item.ID, *item.Order); err != nil {
			fail(c, err, "")
			return
		}
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Orden actualizado"})
}
