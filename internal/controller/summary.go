package controller

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"planera/internal/middleware"
	"planera/internal/models"
	"planera/internal/repository"
)

var tips = []string{
	"No puedes controlar lo que ocurre, pero sí cómo respondes. – Epicteto",
	"Haz hoy lo que otros no quieren, y mañana vivirás como otros no pueden.",
	"Tu sufrimiento viene no de los eventos, sino de tu juicio sobre ellos. – Marco Aurelio",
	"La disciplina es libertad. Cuanto más controlas tu impulso, más libre eres.",
	"Acepta lo que no controlas. Enfócate solo en lo que depende de ti.",
	"Recuerda: el tiempo pasa, estés motivado o no. Aprovecha el día.",
	"Sé agradecido. Incluso en días duros, hay algo que valorar.",
	"Cuando no tengas ganas, entrena. Cuando estés cansado, actúa. Ese es el punto donde creces.",
	"El dolor es tu maestro. El confort es tu enemigo.",
	"Empieza el día con una intención clara. No vivas en piloto automático.",
	"No dependas de la motivación. Depende de tus hábitos.",
	"Ten una rutina fuerte al despertar: cuerpo en movimiento, mente en orden.",
	"No te compares con otros. Tu única competencia eres tú mismo.",
}

// Summary fans the dashboard counters out concurrently, one unit of work per
// query, and derives the assistant notifications from the results.
func (h *Handlers) Summary(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	var (
		totalTasks, completedTasks int
		totalGoals, completedGoals int
		upcomingEvents             int
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		uow, err := h.store.Begin(ctx)
		if err != nil {
			return err
		}
		defer uow.Rollback()
		totalTasks, completedTasks, err = repository.CountEvents(ctx, uow, userID)
		return err
	})
	g.Go(func() error {
		uow, err := h.store.Begin(ctx)
		if err != nil {
			return err
		}
		defer uow.Rollback()
		totalGoals, completedGoals, err = repository.CountGoals(ctx, uow, userID)
		return err
	})
	g.Go(func() error {
		uow, err := h.store.Begin(ctx)
		if err != nil {
			return err
		}
		defer uow.Rollback()
		upcomingEvents, err = repository.CountUpcomingEvents(ctx, uow, userID, models.Today())
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, err, "")
		return
	}

	pendingTasks := totalTasks - completedTasks

	notifications := make([]string, 0, 3)
	if pendingTasks > 0 {
		notifications = append(notifications, fmt.Sprintf("Tienes %d tarea(s) pendiente(s).", pendingTasks))
	}
	if upcomingEvents > 0 {
		notifications = append(notifications, fmt.Sprintf("Tienes %d evento(s) próximamente.", upcomingEvents))
	}
	if totalGoals > 0 && completedGoals < totalGoals {
		notifications = append(notifications, fmt.Sprintf("Has completado %d/%d metas.", completedGoals, totalGoals))
	}
	if len(notifications) == 0 {
		notifications = append(notifications, "Todo al día. ¡Buen trabajo!")
	}

	c.JSON(http.StatusOK, gin.H{
		"total_tareas":       totalTasks,
		"tareas_completadas": completedTasks,
		"tareas_pendientes":  pendingTasks,
		"total_metas":        totalGoals,
		"metas_alcanzadas":   completedGoals,
		"proximos_eventos":   upcomingEvents,
		"tareas_info":        fmt.Sprintf("%d/%d", completedTasks, totalTasks),
		"metas_info":         fmt.Sprintf("%d/%d", completedGoals, totalGoals),
		"notificaciones":     notifications,
		"consejo":            tips[rand.Intn(len(tips))],
	})
}
