package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"planera/internal/repository"
	"planera/internal/session"
	"planera/pkg/logger"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account. 409 when the username exists.
func (h *Handlers) Register(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}
	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		badRequest(c, "Usuario y contraseña requeridos")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, err, "")
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	user, err := repository.CreateUser(c.Request.Context(), uow, username, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "El nombre de usuario ya existe"})
			return
		}
		fail(c, err, "")
		return
	}
	if !h.commit(c, uow) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// Login verifies credentials and sets the session cookie. A wrong username
// and a wrong password answer identically.
func (h *Handlers) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}
	uow, ok := h.begin(c)
	if !ok {
		return
	}
	defer uow.Rollback()
	user, err := repository.GetUserByUsername(ctx, uow, strings.TrimSpace(body.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
			return
		}
		fail(c, err, "")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
		return
	}
	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		logger.Error(ctx, "Issue session failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}
	c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "token": token})
}

// Logout revokes the current session and clears the cookie.
func (h *Handlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		h.sessions.Revoke(c.Request.Context(), token)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}
