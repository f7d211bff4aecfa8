package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"planera/internal/database"
	"planera/internal/middleware"
	"planera/internal/models"
	"planera/internal/repository"
)

// journalNoteView is the wire shape of a note: the title is derived from the
// first content line and the placement is encoded as "tema:<id>",
// "categoria:<id>", "subcategoria:<id>" or "root".
type journalNoteView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Place     string    `json:"place"`
	Tags      []string  `json:"tags"`
}

func noteTitle(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	if len(line) > 50 {
		line = line[:50]
	}
	return line
}

func notePlace(n models.JournalNote) string {
	switch {
	case n.TopicID != nil:
		return fmt.Sprintf("tema:%d", *n.TopicID)
	case n.CategoryID != nil:
		return fmt.Sprintf("categoria:%d", *n.CategoryID)
	case n.SubcategoryID != nil:
		return fmt.Sprintf("subcategoria:%d", *n.SubcategoryID)
	default:
		return "root"
	}
}

// GetJournal returns the user's whole journal tree in one payload.
func (h *Handlers) GetJournal(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	topics, err := repository.ListJournalTopics(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	categories, err := repository.ListJournalCategories(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	subcategories, err := repository.ListJournalSubcategories(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	notes, err := repository.ListJournalNotes(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}

	noteViews := make([]journalNoteView, 0, len(notes))
	for _, n := range notes {
		noteViews = append(noteViews, journalNoteView{
			ID:        n.ID,
			Title:     noteTitle(n.Content),
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
			Place:     notePlace(n),
			Tags:      []string{},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"temas":         topics,
		"categorias":    categories,
		"subcategorias": subcategories,
		"notas":         noteViews,
	})
}

type journalTopicRequest struct {
	ID        *int64  `json:"id"`
	Name      string  `json:"name"`
	CreatedAt *string `json:"createdAt"`
}

type journalCategoryRequest struct {
	ID      *int64 `json:"id"`
	Name    string `json:"name"`
	TopicID *int64 `json:"temaId"`
}

type journalSubcategoryRequest struct {
	ID         *int64 `json:"id"`
	Name       string `json:"name"`
	CategoryID *int64 `json:"categoriaId"`
}

type journalNoteRequest struct {
	ID        *int64  `json:"id"`
	Content   string  `json:"content"`
	CreatedAt *string `json:"createdAt"`
	Place     *string `json:"place"`
}

type journalSaveRequest struct {
	Topics        []journalTopicRequest       `json:"temas"`
	Categories    []journalCategoryRequest    `json:"categorias"`
	Subcategories []journalSubcategoryRequest `json:"subcategorias"`
	Notes         []journalNoteRequest        `json:"notas"`
}

// parseJournalTime accepts the client's ISO timestamps with or without an
// offset.
func parseJournalTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SaveJournal upserts the whole tree in one transaction. Client-side ids are
// remapped to persisted ids level by level so new parents can be referenced
// by their children within the same payload. Notes absent from the payload
// are pruned.
func (h *Handlers) SaveJournal(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var body journalSaveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	topicMap := make(map[int64]int64, len(body.Topics))
	for _, t := range body.Topics {
		var topic *models.JournalTopic
		if t.ID != nil {
			existing, err := repository.GetJournalTopic(ctx, uow, userID, *t.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				fail(c, err, "")
				return
			}
			topic = existing
		}
		createdAt := time.Now().UTC()
		if t.CreatedAt != nil {
			if parsed, ok := parseJournalTime(*t.CreatedAt); ok {
				createdAt = parsed
			}
		}
		if topic != nil {
			topic.Title = t.Name
			if t.CreatedAt != nil {
				topic.CreatedAt = createdAt
			}
			if err := repository.UpdateJournalTopic(ctx, uow, topic); err != nil {
				fail(c, err, "")
				return
			}
		} else {
			topic = &models.JournalTopic{UserID: userID, Title: t.Name, CreatedAt: createdAt}
			if err := repository.CreateJournalTopic(ctx, uow, topic); err != nil {
				fail(c, err, "")
				return
			}
		}
		if t.ID != nil {
			topicMap[*t.ID] = topic.ID
		}
	}

	categoryMap := make(map[int64]int64, len(body.Categories))
	for _, cat := range body.Categories {
		if cat.TopicID == nil {
			badRequest(c, "Cada categoría debe tener un tema padre válido (temaId)")
			return
		}
		topicID, found := topicMap[*cat.TopicID]
		if !found {
			badRequest(c, fmt.Sprintf("Tema padre con id %d no encontrado", *cat.TopicID))
			return
		}

		var category *models.JournalCategory
		if cat.ID != nil {
			existing, err := repository.GetJournalCategory(ctx, uow, userID, *cat.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				fail(c, err, "")
				return
			}
			category = existing
		}
		if category != nil {
			category.Name = cat.Name
			category.TopicID = topicID
			if err := repository.UpdateJournalCategory(ctx, uow, category); err != nil {
				fail(c, err, "")
				return
			}
		} else {
			category = &models.JournalCategory{TopicID: topicID, Name: cat.Name}
			if err := repository.CreateJournalCategory(ctx, uow, category); err != nil {
				fail(c, err, "")
				return
			}
		}
		if cat.ID != nil {
			categoryMap[*cat.ID] = category.ID
		}
	}

	subcategoryMap := make(map[int64]int64, len(body.Subcategories))
	for _, sub := range body.Subcategories {
		if sub.CategoryID == nil {
			badRequest(c, "Cada subcategoría debe tener una categoría padre válida (categoriaId)")
			return
		}
		categoryID, found := categoryMap[*sub.CategoryID]
		if !found {
			badRequest(c, fmt.Sprintf("Categoría padre con id %d no encontrada", *sub.CategoryID))
			return
		}

		var subcategory *models.JournalSubcategory
		if sub.ID != nil {
			existing, err := repository.GetJournalSubcategory(ctx, uow, userID, *sub.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				fail(c, err, "")
				return
			}
			subcategory = existing
		}
		if subcategory != nil {
			subcategory.Name = sub.Name
			subcategory.CategoryID = categoryID
			if err := repository.UpdateJournalSubcategory(ctx, uow, subcategory); err != nil {
				fail(c, err, "")
				return
			}
		} else {
			subcategory = &models.JournalSubcategory{CategoryID: categoryID, Name: sub.Name}
			if err := repository.CreateJournalSubcategory(ctx, uow, subcategory); err != nil {
				fail(c, err, "")
				return
			}
		}
		if sub.ID != nil {
			subcategoryMap[*sub.ID] = subcategory.ID
		}
	}

	existing, err := repository.ListJournalNotes(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	existingByID := make(map[int64]models.JournalNote, len(existing))
	for _, n := range existing {
		existingByID[n.ID] = n
	}
	kept := make(map[int64]bool, len(body.Notes))

	for _, n := range body.Notes {
		note := models.JournalNote{UserID: userID, Content: n.Content, CreatedAt: time.Now().UTC()}
		isUpdate := false
		if n.ID != nil {
			if prev, found := existingByID[*n.ID]; found {
				note = prev
				note.Content = n.Content
				isUpdate = true
			}
		}
		if n.CreatedAt != nil {
			if parsed, ok := parseJournalTime(*n.CreatedAt); ok {
				note.CreatedAt = parsed
			}
		}
		note.TopicID, note.CategoryID, note.SubcategoryID = nil, nil, nil
		if n.Place != nil {
			kind, rawID, _ := strings.Cut(*n.Place, ":")
			clientID, _ := strconv.ParseInt(rawID, 10, 64)
			switch kind {
			case "tema":
				if id, found := topicMap[clientID]; found {
					note.TopicID = &id
				}
			case "categoria":
				if id, found := categoryMap[clientID]; found {
					note.CategoryID = &id
				}
			case "subcategoria":
				if id, found := subcategoryMap[clientID]; found {
					note.SubcategoryID = &id
				}
			}
		}
		if isUpdate {
			if err := repository.UpdateJournalNote(ctx, uow, &note); err != nil {
				fail(c, err, "")
				return
			}
		} else {
			if err := repository.CreateJournalNote(ctx, uow, &note); err != nil {
				fail(c, err, "")
				return
			}
		}
		kept[note.ID] = true
	}

	for id := range existingByID {
		if kept[id] {
			continue
		}
		if err := repository.DeleteJournalNote(ctx, uow, userID, id); err != nil {
			fail(c, err, "")
			return
		}
	}

	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type journalDeleteFunc func(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error

func (h *Handlers) deleteJournalItem(c *gin.Context, del journalDeleteFunc) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Elemento no encontrado"})
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := del(ctx, uow, userID, id); err != nil {
		fail(c, err, "Elemento no encontrado")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handlers) DeleteJournalNote(c *gin.Context) {
	h.deleteJournalItem(c, repository.DeleteJournalNote)
}

func (h *Handlers) DeleteJournalTopic(c *gin.Context) {
	h.deleteJournalItem(c, repository.DeleteJournalTopic)
}

func (h *Handlers) DeleteJournalCategory(c *gin.Context) {
	h.deleteJournalItem(c, repository.DeleteJournalCategory)
}

func (h *Handlers) DeleteJournalSubcategory(c *gin.Context) {
	h.deleteJournalItem(c, repository.DeleteJournalSubcategory)
}
