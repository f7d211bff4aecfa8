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

func (h *Handlers) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	categories, err := repository.ListCategories(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, categories)
}

type categoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory adds a category; names are unique per user.
func (h *Handlers) CreateCategory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var body categoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Nombre de categoría requerido")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		badRequest(c, "Nombre de categoría requerido")
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	existing, err := repository.FindCategoryByName(ctx, uow, userID, name)
	if err != nil {
		fail(c, err, "")
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Categoría ya existe"})
		return
	}

	category := models.Category{UserID: userID, Name: name}
	if err := repository.CreateCategory(ctx, uow, &category); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handlers) UpdateCategory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	category, err := repository.GetCategory(ctx, uow, userID, id)
	if err != nil {
		fail(c, err, "Categoría no encontrada")
		return
	}

	var body categoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Nombre no válido")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		badRequest(c, "Nombre no válido")
		return
	}

	category.Name = name
	if err := repository.UpdateCategory(ctx, uow, category); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory refuses to remove a category that still has goals filed
// under it.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	if _, err := repository.GetCategory(ctx, uow, userID, id); err != nil {
		fail(c, err, "Categoría no encontrada")
		return
	}
	n, err := repository.CountGoalsInCategory(ctx, uow, userID, id)
	if err != nil {
		fail(c, err, "")
		return
	}
	if n > 0 {
		badRequest(c, "La categoría no está vacía")
		return
	}
	if err := repository.DeleteCategory(ctx, uow, userID, id); err != nil {
		fail(c, err, "Categoría no encontrada")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Categoría eliminada"})
}
