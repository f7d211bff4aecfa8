package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"planera/internal/middleware"
	"planera/internal/models"
	"planera/internal/repository"
	"planera/internal/schedule"
)

// GetWeek expands the user's schedule over the 7-day window starting at
// ?start=YYYY-MM-DD. Cache-first as raw bytes; concurrent misses for the same
// user and week are collapsed into one expansion.
func (h *Handlers) GetWeek(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	startStr := c.Query("start")
	start, err := models.ParseDate(startStr)
	if err != nil {
		badRequest(c, "Fecha inválida")
		return
	}
	end := start.AddDays(6)

	if b, ok := h.cache.Week(ctx, userID, start.ISO()); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}

	key := strconv.FormatInt(userID, 10) + ":" + start.ISO()
	v, err, _ := h.weekGroup.Do(key, func() (interface{}, error) {
		uow, err := h.store.Begin(context.Background())
		if err != nil {
			return nil, err
		}
		defer uow.Rollback()
		tasks, err := repository.ListScheduleTasksThrough(context.Background(), uow, userID, end)
		if err != nil {
			return nil, err
		}
		occurrences := schedule.Expand(tasks, start, end)
		return json.Marshal(gin.H{"start": start, "tasks": occurrences})
	})
	if err != nil {
		fail(c, err, "")
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	h.cache.SetWeekAsync(userID, start.ISO(), b)
}

type createScheduleTaskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Date        string             `json:"date"`
	EndDate     string             `json:"endDate"`
	StartHour   *float64           `json:"startHour"`
	Duration    *float64           `json:"duration"`
	Completed   bool               `json:"completed"`
	InProgress  bool               `json:"inProgress"`
	Color       *string            `json:"color"`
	Recurrence  *models.Recurrence `json:"recurrence"`
}

// CreateScheduleTask stores a new definition.
func (h *Handlers) CreateScheduleTask(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var body createScheduleTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}
	date, err := models.ParseDate(body.Date)
	if err != nil {
		badRequest(c, "Fecha inválida")
		return
	}
	if body.StartHour == nil || body.Duration == nil {
		badRequest(c, "Hora de inicio y duración requeridas")
		return
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		badRequest(c, "Título requerido")
		return
	}
	var endDate *models.Date
	if body.EndDate != "" {
		parsed, err := models.ParseDate(body.EndDate)
		if err != nil {
			badRequest(c, "Fecha inválida")
			return
		}
		endDate = &parsed
	}
	recurrence := models.RecurrenceNone
	if body.Recurrence != nil {
		recurrence = *body.Recurrence
	}

	task := models.ScheduleTask{
		UserID:      userID,
		Title:       title,
		Description: body.Description,
		Date:        date,
		EndDate:     endDate,
		StartHour:   *body.StartHour,
		Duration:    *body.Duration,
		Completed:   body.Completed,
		InProgress:  body.InProgress,
		Color:       body.Color,
		Recurrence:  recurrence,
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.CreateScheduleTask(ctx, uow, &task); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	h.cache.InvalidateWeeks(ctx, userID)
	c.JSON(http.StatusOK, task)
}

// UpdateScheduleTask handles both targets of a PUT: a definition id applies
// the patch to the stored row; a composite occurrence id splits that single
// occurrence off into a new independent one-off, leaving the series alone.
func (h *Handlers) UpdateScheduleTask(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)

	ref, err := schedule.ParseTaskRef(c.Param("id"))
	if err != nil {
		if errors.Is(err, schedule.ErrBadRefDate) {
			badRequest(c, "Fecha de instancia inválida")
		} else {
			badRequest(c, "ID inválido")
		}
		return
	}

	var patch models.ScheduleTaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		if errors.Is(err, models.ErrBadDate) {
			badRequest(c, "Fecha inválida")
		} else {
			badRequest(c, "Datos inválidos")
		}
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	task, err := repository.GetScheduleTask(ctx, uow, userID, ref.ID)
	if err != nil {
		fail(c, err, "Tarea no encontrada")
		return
	}

	if ref.IsOccurrence() {
		split := schedule.SplitOccurrence(*task, *ref.Date, patch)
		if err := repository.CreateScheduleTask(ctx, uow, &split); err != nil {
			fail(c, err, "")
			return
		}
		if !h.commit(c, uow) {
			return
		}
		h.cache.InvalidateWeeks(ctx, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Instancia creada", "id": split.ID})
		return
	}

	task.Apply(patch)
	if err := repository.UpdateScheduleTask(ctx, uow, task); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	h.cache.InvalidateWeeks(ctx, userID)
	c.JSON(http.StatusOK, task)
}

// DeleteScheduleTask removes a definition and, for a recurring series, every
// future occurrence with it.
func (h *Handlers) DeleteScheduleTask(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tarea no encontrada"})
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.DeleteScheduleTask(ctx, uow, userID, id); err != nil {
		fail(c, err, "Tarea no encontrada")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	h.cache.InvalidateWeeks(ctx, userID)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
