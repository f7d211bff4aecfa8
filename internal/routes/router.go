package routes

import (
	"github.com/gin-gonic/gin"

	"planera/internal/controller"
	"planera/internal/middleware"
	"planera/internal/session"
)

func Router(h *controller.Handlers, sessions *session.Manager) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Health for load balancers and K8s probes
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", h.Logout)

	// Everything below is scoped to the session user
	api := router.Group("/api")
	api.Use(middleware.RequireAuth(sessions))
	{
		api.GET("/week", h.GetWeek)
		api.POST("/tasks", h.CreateScheduleTask)
		api.PUT("/tasks/:id", h.UpdateScheduleTask)
		api.DELETE("/tasks/:id", h.DeleteScheduleTask)

		api.GET("/templates", h.ListTemplates)
		api.POST("/templates", h.CreateTemplate)
		api.PUT("/templates/:id", h.UpdateTemplate)
		api.DELETE("/templates/:id", h.DeleteTemplate)

		api.GET("/categories", h.ListCategories)
		api.POST("/categories", h.CreateCategory)
		api.PUT("/categories/:id", h.UpdateCategory)
		api.DELETE("/categories/:id", h.DeleteCategory)

		api.GET("/goals", h.ListGoals)
		api.POST("/goals", h.CreateGoal)
		api.POST("/goals/reorder", h.ReorderGoals)
		api.PUT("/goals/:id", h.UpdateGoal)
		api.DELETE("/goals/:id", h.DeleteGoal)

		api.GET("/events", h.ListEvents)
		api.POST("/events", h.CreateEvent)
		api.PUT("/events/:id", h.UpdateEvent)
		api.PUT("/events/:id/complete", h.ToggleEventCompleted)
		api.DELETE("/events/:id", h.DeleteEvent)

		api.GET("/passwords", h.ListPasswords)
		api.GET("/passwords/generate", h.GeneratePassword)
		api.POST("/passwords", h.CreatePassword)
		api.PUT("/passwords/:id", h.UpdatePassword)
		api.DELETE("/passwords/:id", h.DeletePassword)

		api.GET("/diario", h.GetJournal)
		api.POST("/diario", h.SaveJournal)
		api.DELETE("/diario/apartado/:id", h.DeleteJournalNote)
		api.DELETE("/diario/tema/:id", h.DeleteJournalTopic)
		api.DELETE("/diario/categoria/:id", h.DeleteJournalCategory)
		api.DELETE("/diario/subcategoria/:id", h.DeleteJournalSubcategory)

		api.GET("/summary", h.Summary)
	}

	return router
}
