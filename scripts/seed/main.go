// Seed creates a demo account with a populated week. Run from project root:
// go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"planera/internal/config"
	"planera/internal/database"
	"planera/internal/models"
	"planera/internal/repository"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	store, err := database.Open(cfg.DatabaseURL, cfg.DBPoolSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "DB connection failed:", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	uow, err := store.Begin(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Begin failed:", err)
		os.Exit(1)
	}
	defer uow.Rollback()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Hash failed:", err)
		os.Exit(1)
	}
	user, err := repository.CreateUser(ctx, uow, "demo", string(hash))
	if err != nil {
		fmt.Fprintln(os.Stderr, "User exists or insert failed:", err)
		os.Exit(1)
	}

	monday := models.Today()
	for monday.Weekday() != time.Monday {
		monday = monday.AddDays(-1)
	}
	endOfMonth := monday.AddDays(60)

	tasks := []models.ScheduleTask{
		{Title: "Gimnasio", Date: monday, EndDate: &endOfMonth, StartHour: 7, Duration: 1.5, Recurrence: models.RecurrenceDaily},
		{Title: "Reunión semanal", Date: monday, EndDate: &endOfMonth, StartHour: 10, Duration: 1, Recurrence: models.RecurrenceWeekly},
		{Title: "Revisión de facturas", Date: monday.AddDays(2), EndDate: &endOfMonth, StartHour: 16, Duration: 0.5, Recurrence: models.RecurrenceMonthly},
		{Title: "Cita médica", Date: monday.AddDays(3), StartHour: 12, Duration: 1, Recurrence: models.RecurrenceNone},
	}
	for i := range tasks {
		tasks[i].UserID = user.ID
		if err := repository.CreateScheduleTask(ctx, uow, &tasks[i]); err != nil {
			fmt.Fprintln(os.Stderr, "Insert failed:", err)
			os.Exit(1)
		}
	}

	if err := uow.Commit(); err != nil {
		fmt.Fprintln(os.Stderr, "Commit failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded user %q (id %d) with %d schedule tasks\n", user.Username, user.ID, len(tasks))
}
