package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"planera/internal/middleware"
	"planera/internal/models"
	"planera/internal/repository"
)

func (h *Handlers) ListTemplates(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	templates, err := repository.ListTemplates(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

type templateRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Duration    *float64           `json:"duration"`
	Color       *string            `json:"color"`
	Recurrence  *models.Recurrence `json:"recurrence"`
}

// CreateTemplate stores a dateless task preset.
func (h *Handlers) CreateTemplate(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var body templateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Título requerido")
		return
	}
	title := ""
	if body.Title != nil {
		title = strings.TrimSpace(*body.Title)
	}
	if title == "" {
		badRequest(c, "Título requerido")
		return
	}

	tpl := models.Template{
		UserID:     userID,
		Title:      title,
		Duration:   1,
		Recurrence: models.RecurrenceNone,
	}
	if body.Description != nil {
		tpl.Description = *body.Description
	}
	if body.Duration != nil {
		tpl.Duration = *body.Duration
	}
	tpl.Color = body.Color
	if body.Recurrence != nil {
		tpl.Recurrence = *body.Recurrence
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.CreateTemplate(ctx, uow, &tpl); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handlers) UpdateTemplate(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plantilla no encontrada"})
		return
	}
	var body templateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	tpl, err := repository.GetTemplate(ctx, uow, userID, id)
	if err != nil {
		fail(c, err, "Plantilla no encontrada")
		return
	}

	if body.Title != nil {
		tpl.Title = strings.TrimSpace(*body.Title)
	}
	if body.Description != nil {
		tpl.Description = *body.Description
	}
	if body.Duration != nil {
		tpl.Duration = *body.Duration
	}
	if body.Color != nil {
		tpl.Color = body.Color
	}
	if body.Recurrence != nil {
		tpl.Recurrence = *body.Recurrence
	}

	if err := repository.UpdateTemplate(ctx, uow, tpl); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handlers) DeleteTemplate(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plantilla no encontrada"})
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.DeleteTemplate(ctx, uow, userID, id); err != nil {
		fail(c, err, "Plantilla no encontrada")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
