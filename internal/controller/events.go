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

// parseRangeDate accepts both plain dates and the ISO datetimes calendar
// clients send (trailing time and Z discarded).
func parseRangeDate(s string) (models.Date, error) {
	s = strings.TrimSuffix(s, "Z")
	if len(s) > 10 {
		s = s[:10]
	}
	return models.ParseDate(s)
}

// ListEvents returns the user's calendar events, optionally filtered to those
// starting inside ?start..?end.
func (h *Handlers) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)

	var from, to *models.Date
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" && endStr != "" {
		start, err := parseRangeDate(startStr)
		if err != nil {
			badRequest(c, "Formato de fecha inválido")
			return
		}
		end, err := parseRangeDate(endStr)
		if err != nil {
			badRequest(c, "Formato de fecha inválido")
			return
		}
		from, to = &start, &end
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	events, err := repository.ListEvents(ctx, uow, userID, from, to)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, events)
}

type subtaskRequest struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type eventRequest struct {
	Title     *string          `json:"title"`
	Start     *string          `json:"start"`
	End       *string          `json:"end"`
	Priority  *int             `json:"priority"`
	Tag       *string          `json:"tag"`
	TagColor  *string          `json:"tagColor"`
	Completed *bool            `json:"completed"`
	RRuleText *string          `json:"rruleText"`
	Subtasks  []subtaskRequest `json:"subtasks"`
}

func subtasksFromRequest(items []subtaskRequest) []models.Subtask {
	subtasks := make([]models.Subtask, 0, len(items))
	for _, st := range items {
		subtasks = append(subtasks, models.Subtask{Text: st.Text, Done: st.Done})
	}
	return subtasks
}

// CreateEvent validates title and dates, then stores the event and its
// subtasks in one transaction.
func (h *Handlers) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var body eventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}
	if body.Title == nil || *body.Title == "" {
		badRequest(c, "El título es obligatorio")
		return
	}
	if body.Start == nil || *body.Start == "" {
		badRequest(c, "La fecha de inicio es obligatoria")
		return
	}
	start, err := models.ParseDate(*body.Start)
	if err != nil {
		badRequest(c, "Formato de fecha de inicio inválido")
		return
	}
	var end *models.Date
	if body.End != nil && *body.End != "" {
		parsed, err := models.ParseDate(*body.End)
		if err != nil {
			badRequest(c, "Formato de fecha de fin inválido")
			return
		}
		end = &parsed
	}
	if end != nil && end.Before(start) {
		badRequest(c, "La fecha de fin no puede ser anterior a la de inicio")
		return
	}

	event := models.Event{
		UserID:    userID,
		Title:     *body.Title,
		Start:     start,
		End:       end,
		Priority:  2,
		Tag:       body.Tag,
		TagColor:  body.TagColor,
		RRuleText: body.RRuleText,
		Subtasks:  subtasksFromRequest(body.Subtasks),
	}
	if body.Priority != nil {
		event.Priority = *body.Priority
	}
	if body.Completed != nil {
		event.Completed = *body.Completed
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.CreateEvent(ctx, uow, &event); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusCreated, event)
}

// UpdateEvent applies a partial patch; when the payload carries subtasks the
// stored set is replaced with it.
func (h *Handlers) UpdateEvent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento no encontrado"})
		return
	}
	var body eventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	event, err := repository.GetEvent(ctx, uow, userID, id)
	if err != nil {
		fail(c, err, "Evento no encontrado")
		return
	}

	if body.Title != nil {
		event.Title = *body.Title
	}
	if body.Start != nil {
		start, err := models.ParseDate(*body.Start)
		if err != nil {
			badRequest(c, "Formato de fecha de inicio inválido")
			return
		}
		event.Start = start
	}
	if body.End != nil {
		if *body.End == "" {
			event.End = nil
		} else {
			end, err := models.ParseDate(*body.End)
			if err != nil {
				badRequest(c, "Formato de fecha de fin inválido")
				return
			}
			event.End = &end
		}
	}
	if event.End != nil && event.End.Before(event.Start) {
		badRequest(c, "La fecha de fin no puede ser anterior a la de inicio")
		return
	}
	if body.Priority != nil {
		event.Priority = *body.Priority
	}
	if body.Tag != nil {
		event.Tag = body.Tag
	}
	if body.TagColor != nil {
		event.TagColor = body.TagColor
	}
	if body.Completed != nil {
		event.Completed = *body.Completed
	}
	if body.RRuleText != nil {
		event.RRuleText = body.RRuleText
	}
	if body.Subtasks != nil {
		event.Subtasks = subtasksFromRequest(body.Subtasks)
	}

	if err := repository.UpdateEvent(ctx, uow, event); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, event)
}

// ToggleEventCompleted flips the completed flag.
func (h *Handlers) ToggleEventCompleted(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento no encontrado"})
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	event, err := repository.GetEvent(ctx, uow, userID, id)
	if err != nil {
		fail(c, err, "Evento no encontrado")
		return
	}
	event.Completed = !event.Completed
	if err := repository.UpdateEvent(ctx, uow, event); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handlers) DeleteEvent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento no encontrado"})
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.DeleteEvent(ctx, uow, userID, id); err != nil {
		fail(c, err, "Evento no encontrado")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
