package controller

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"planera/internal/middleware"
	"planera/internal/models"
	"planera/internal/repository"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+"

func (h *Handlers) ListPasswords(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	entries, err := repository.ListPasswordEntries(ctx, uow, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, entries)
}

type passwordRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handlers) CreatePassword(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	var body passwordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Solicitud inválida")
		return
	}
	name := strings.TrimSpace(body.Name)
	password := strings.TrimSpace(body.Password)
	if name == "" || password == "" {
		badRequest(c, "Nombre y contraseña son obligatorios")
		return
	}

	entry := models.PasswordEntry{
		UserID:    userID,
		Name:      name,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.CreatePasswordEntry(ctx, uow, &entry); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handlers) UpdatePassword(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contraseña no encontrada"})
		return
	}
	var body passwordRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" || body.Password == "" {
		badRequest(c, "Solicitud inválida")
		return
	}

	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()

	entry, err := repository.GetPasswordEntry(ctx, uow, userID, id)
	if err != nil {
		fail(c, err, "Contraseña no encontrada")
		return
	}
	entry.Name = body.Name
	entry.Password = body.Password
	if err := repository.UpdatePasswordEntry(ctx, uow, entry); err != nil {
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Contraseña actualizada"})
}

func (h *Handlers) DeletePassword(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contraseña no encontrada"})
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	if err := repository.DeletePasswordEntry(ctx, uow, userID, id); err != nil {
		fail(c, err, "Contraseña no encontrada")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "message": "Contraseña eliminada"})
}

// GeneratePassword returns a random password of ?length characters
// (default 16) drawn from letters, digits and common symbols.
func (h *Handlers) GeneratePassword(c *gin.Context) {
	length := 16
	if s := c.Query("length"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 128 {
			badRequest(c, "Longitud inválida")
			return
		}
		length = n
	}
	generated, err := randomPassword(length)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"password": generated})
}

func randomPassword(length int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String(), nil
}
