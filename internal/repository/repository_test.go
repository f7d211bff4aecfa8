package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"planera/internal/database"
	"planera/internal/models"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	s, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func begin(t *testing.T, s *database.Store) *database.UnitOfWork {
	t.Helper()
	uow, err := s.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	t.Cleanup(func() { uow.Rollback() })
	return uow
}

func seedUser(t *testing.T, uow *database.UnitOfWork, username string) *models.User {
	t.Helper()
	u, err := CreateUser(context.Background(), uow, username, "$2a$10$hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func testDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestCreateUserDuplicate(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))

	u := seedUser(t, uow, "ana")
	if u.ID == 0 {
		t.Fatal("user id not assigned")
	}
	if _, err := CreateUser(ctx, uow, "ana", "otherhash"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
	got, err := GetUserByUsername(ctx, uow, "ana")
	if err != nil || got.ID != u.ID {
		t.Fatalf("lookup: %v, %v", got, err)
	}
	if _, err := GetUserByUsername(ctx, uow, "nadie"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user err = %v", err)
	}
}

func TestScheduleTaskCRUD(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")
	other := seedUser(t, uow, "eva")

	end := testDate(t, "2025-03-31")
	task := models.ScheduleTask{
		UserID:     user.ID,
		Title:      "Reunión",
		Date:       testDate(t, "2025-01-06"),
		EndDate:    &end,
		StartHour:  10.5,
		Duration:   1.5,
		Recurrence: models.RecurrenceWeekly,
	}
	if err := CreateScheduleTask(ctx, uow, &task); err != nil {
		t.Fatal(err)
	}
	if task.ID == 0 {
		t.Fatal("id not assigned")
	}

	got, err := GetScheduleTask(ctx, uow, user.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Reunión" || got.StartHour != 10.5 || got.Recurrence != models.RecurrenceWeekly {
		t.Fatalf("round trip: %+v", got)
	}
	if got.EndDate == nil || got.EndDate.ISO() != "2025-03-31" {
		t.Fatalf("endDate = %v", got.EndDate)
	}

	// Ownership: another user sees nothing.
	if _, err := GetScheduleTask(ctx, uow, other.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign get err = %v", err)
	}
	if err := DeleteScheduleTask(ctx, uow, other.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v", err)
	}

	got.Title = "Reunión semanal"
	got.EndDate = nil
	if err := UpdateScheduleTask(ctx, uow, got); err != nil {
		t.Fatal(err)
	}
	again, err := GetScheduleTask(ctx, uow, user.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Title != "Reunión semanal" || again.EndDate != nil {
		t.Fatalf("after update: %+v", again)
	}

	if err := DeleteScheduleTask(ctx, uow, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := GetScheduleTask(ctx, uow, user.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete err = %v", err)
	}
}

func TestListScheduleTasksThroughFiltersByDate(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	for _, day := range []string{"2025-01-06", "2025-01-20", "2025-02-03"} {
		task := models.ScheduleTask{UserID: user.ID, Title: day, Date: testDate(t, day), Recurrence: models.RecurrenceNone}
		if err := CreateScheduleTask(ctx, uow, &task); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ListScheduleTasksThrough(ctx, uow, user.ID, testDate(t, "2025-01-26"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2 (definitions anchored past the window end excluded)", len(got))
	}
	for _, task := range got {
		if task.Date.After(testDate(t, "2025-01-26")) {
			t.Errorf("task %q leaked past the end date", task.Title)
		}
	}
}

func TestGoalOrderAndCategoryScoping(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	cat := models.Category{UserID: user.ID, Name: "General"}
	if err := CreateCategory(ctx, uow, &cat); err != nil {
		t.Fatal(err)
	}

	if max, err := MaxGoalOrder(ctx, uow, user.ID); err != nil || max != 0 {
		t.Fatalf("empty max order = %d, %v", max, err)
	}

	for i, desc := range []string{"Leer", "Correr", "Ahorrar"} {
		g := models.Goal{
			UserID:      user.ID,
			Description: desc,
			CategoryID:  &cat.ID,
			CreatedAt:   time.Now().UTC(),
			Order:       i + 1,
		}
		if err := CreateGoal(ctx, uow, &g); err != nil {
			t.Fatal(err)
		}
	}

	if max, err := MaxGoalOrder(ctx, uow, user.ID); err != nil || max != 3 {
		t.Fatalf("max order = %d, %v", max, err)
	}
	if n, err := CountGoalsInCategory(ctx, uow, user.ID, cat.ID); err != nil || n != 3 {
		t.Fatalf("goals in category = %d, %v", n, err)
	}

	goals, err := ListGoals(ctx, uow, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 3 || goals[0].Description != "Leer" {
		t.Fatalf("list: %+v", goals)
	}
	if goals[0].CategoryName == nil || *goals[0].CategoryName != "General" {
		t.Fatalf("category name not joined: %+v", goals[0])
	}

	// Reorder moves "Ahorrar" first.
	if err := SetGoalOrder(ctx, uow, user.ID, goals[2].ID, 0); err != nil {
		t.Fatal(err)
	}
	goals, err = ListGoals(ctx, uow, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if goals[0].Description != "Ahorrar" {
		t.Fatalf("after reorder: %+v", goals)
	}

	// Unknown ids are a silent no-op.
	if err := SetGoalOrder(ctx, uow, user.ID, 9999, 1); err != nil {
		t.Fatal(err)
	}
}

func TestFindCategoryHelpers(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	if c, err := FirstCategory(ctx, uow, user.ID); err != nil || c != nil {
		t.Fatalf("empty first = %v, %v", c, err)
	}
	if c, err := FindCategoryByName(ctx, uow, user.ID, "General"); err != nil || c != nil {
		t.Fatalf("empty find = %v, %v", c, err)
	}

	first := models.Category{UserID: user.ID, Name: "General"}
	second := models.Category{UserID: user.ID, Name: "Salud"}
	for _, c := range []*models.Category{&first, &second} {
		if err := CreateCategory(ctx, uow, c); err != nil {
			t.Fatal(err)
		}
	}

	c, err := FirstCategory(ctx, uow, user.ID)
	if err != nil || c == nil || c.ID != first.ID {
		t.Fatalf("first = %v, %v", c, err)
	}
	c, err = FindCategoryByName(ctx, uow, user.ID, "Salud")
	if err != nil || c == nil || c.ID != second.ID {
		t.Fatalf("find = %v, %v", c, err)
	}
}

func TestEventSubtasksReplacedWholesale(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	event := models.Event{
		UserID:   user.ID,
		Title:    "Entrega",
		Start:    testDate(t, "2025-02-01"),
		Priority: 2,
		Subtasks: []models.Subtask{{Text: "Borrador", Done: true}, {Text: "Revisión"}},
	}
	if err := CreateEvent(ctx, uow, &event); err != nil {
		t.Fatal(err)
	}

	got, err := GetEvent(ctx, uow, user.ID, event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Subtasks) != 2 || got.Subtasks[0].Text != "Borrador" || !got.Subtasks[0].Done {
		t.Fatalf("subtasks: %+v", got.Subtasks)
	}

	got.Subtasks = []models.Subtask{{Text: "Entregar"}}
	if err := UpdateEvent(ctx, uow, got); err != nil {
		t.Fatal(err)
	}
	got, err = GetEvent(ctx, uow, user.ID, event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Subtasks) != 1 || got.Subtasks[0].Text != "Entregar" {
		t.Fatalf("after replace: %+v", got.Subtasks)
	}

	if err := DeleteEvent(ctx, uow, user.ID, event.ID); err != nil {
		t.Fatal(err)
	}
	// Cascade removed the children with the parent.
	if subs, err := GetEvent(ctx, uow, user.ID, event.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: %v, %v", subs, err)
	}
}

func TestListEventsDateRange(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	for _, day := range []string{"2025-02-01", "2025-02-15", "2025-03-01"} {
		e := models.Event{UserID: user.ID, Title: day, Start: testDate(t, day), Priority: 2}
		if err := CreateEvent(ctx, uow, &e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := ListEvents(ctx, uow, user.ID, nil, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("all: %d, %v", len(all), err)
	}

	from, to := testDate(t, "2025-02-01"), testDate(t, "2025-02-28")
	feb, err := ListEvents(ctx, uow, user.ID, &from, &to)
	if err != nil || len(feb) != 2 {
		t.Fatalf("feb: %d, %v", len(feb), err)
	}
}

func TestJournalOwnershipThroughJoins(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")
	other := seedUser(t, uow, "eva")

	topic := models.JournalTopic{UserID: user.ID, Title: "Trabajo", CreatedAt: time.Now().UTC()}
	if err := CreateJournalTopic(ctx, uow, &topic); err != nil {
		t.Fatal(err)
	}
	category := models.JournalCategory{TopicID: topic.ID, Name: "Proyectos"}
	if err := CreateJournalCategory(ctx, uow, &category); err != nil {
		t.Fatal(err)
	}
	sub := models.JournalSubcategory{CategoryID: category.ID, Name: "2025"}
	if err := CreateJournalSubcategory(ctx, uow, &sub); err != nil {
		t.Fatal(err)
	}
	note := models.JournalNote{UserID: user.ID, Content: "Primera línea\nresto", SubcategoryID: &sub.ID}
	if err := CreateJournalNote(ctx, uow, &note); err != nil {
		t.Fatal(err)
	}

	// Categories and subcategories have no user column; the joins through the
	// owning topic must keep them invisible to other users.
	if cats, err := ListJournalCategories(ctx, uow, other.ID); err != nil || len(cats) != 0 {
		t.Fatalf("foreign categories: %v, %v", cats, err)
	}
	if subs, err := ListJournalSubcategories(ctx, uow, other.ID); err != nil || len(subs) != 0 {
		t.Fatalf("foreign subcategories: %v, %v", subs, err)
	}
	if _, err := GetJournalCategory(ctx, uow, other.ID, category.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign category get err = %v", err)
	}

	cats, err := ListJournalCategories(ctx, uow, user.ID)
	if err != nil || len(cats) != 1 || cats[0].TopicID != topic.ID {
		t.Fatalf("own categories: %v, %v", cats, err)
	}
	notes, err := ListJournalNotes(ctx, uow, user.ID)
	if err != nil || len(notes) != 1 {
		t.Fatalf("own notes: %v, %v", notes, err)
	}
	if notes[0].SubcategoryID == nil || *notes[0].SubcategoryID != sub.ID {
		t.Fatalf("note placement: %+v", notes[0])
	}

	// Deleting the topic cascades down the tree.
	if err := DeleteJournalTopic(ctx, uow, user.ID, topic.ID); err != nil {
		t.Fatal(err)
	}
	if cats, err := ListJournalCategories(ctx, uow, user.ID); err != nil || len(cats) != 0 {
		t.Fatalf("after cascade: %v, %v", cats, err)
	}
}

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	for i, completed := range []bool{true, false, false} {
		e := models.Event{
			UserID:    user.ID,
			Title:     "Evento",
			Start:     testDate(t, "2025-01-01").AddDays(i * 30),
			Priority:  2,
			Completed: completed,
		}
		if err := CreateEvent(ctx, uow, &e); err != nil {
			t.Fatal(err)
		}
	}
	for _, completed := range []bool{true, true, false} {
		g := models.Goal{UserID: user.ID, Description: "Meta", Completed: completed, CreatedAt: time.Now().UTC()}
		if err := CreateGoal(ctx, uow, &g); err != nil {
			t.Fatal(err)
		}
	}

	total, completed, err := CountEvents(ctx, uow, user.ID)
	if err != nil || total != 3 || completed != 1 {
		t.Fatalf("events: %d/%d, %v", completed, total, err)
	}
	total, completed, err = CountGoals(ctx, uow, user.ID)
	if err != nil || total != 3 || completed != 2 {
		t.Fatalf("goals: %d/%d, %v", completed, total, err)
	}
	upcoming, err := CountUpcomingEvents(ctx, uow, user.ID, testDate(t, "2025-02-01"))
	if err != nil || upcoming != 2 {
		t.Fatalf("upcoming: %d, %v", upcoming, err)
	}
}

func TestTemplateCRUD(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	tpl := models.Template{UserID: user.ID, Title: "Deporte", Duration: 1, Recurrence: models.RecurrenceDaily}
	if err := CreateTemplate(ctx, uow, &tpl); err != nil {
		t.Fatal(err)
	}
	tpl.Duration = 2
	if err := UpdateTemplate(ctx, uow, &tpl); err != nil {
		t.Fatal(err)
	}
	got, err := GetTemplate(ctx, uow, user.ID, tpl.ID)
	if err != nil || got.Duration != 2 {
		t.Fatalf("get: %+v, %v", got, err)
	}
	list, err := ListTemplates(ctx, uow, user.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v, %v", list, err)
	}
	if err := DeleteTemplate(ctx, uow, user.ID, tpl.ID); err != nil {
		t.Fatal(err)
	}
	if err := DeleteTemplate(ctx, uow, user.ID, tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestPasswordEntryCRUD(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, newTestStore(t))
	user := seedUser(t, uow, "ana")

	entry := models.PasswordEntry{UserID: user.ID, Name: "correo", Password: "s3creta", CreatedAt: time.Now().UTC()}
	if err := CreatePasswordEntry(ctx, uow, &entry); err != nil {
		t.Fatal(err)
	}
	entry.Password = "nueva"
	if err := UpdatePasswordEntry(ctx, uow, &entry); err != nil {
		t.Fatal(err)
	}
	got, err := GetPasswordEntry(ctx, uow, user.ID, entry.ID)
	if err != nil || got.Password != "nueva" {
		t.Fatalf("get: %+v, %v", got, err)
	}
	if err := DeletePasswordEntry(ctx, uow, user.ID, entry.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := GetPasswordEntry(ctx, uow, user.ID, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete err = %v", err)
	}
}
