package database

import (
	"context"
	"fmt"
	"strings"
)

// schemaDDL is shared between dialects; the few engine-specific column types
// are substituted in Migrate. Dates are TEXT "YYYY-MM-DD" and timestamps TEXT
// RFC3339 in both engines, so scanning code has a single path.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id            $SERIAL,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id      $SERIAL,
	user_id INTEGER NOT NULL REFERENCES users(id),
	name    TEXT NOT NULL,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS goals (
	id          $SERIAL,
	user_id     INTEGER NOT NULL REFERENCES users(id),
	category_id INTEGER REFERENCES categories(id),
	description TEXT NOT NULL,
	completed   $BOOL NOT NULL DEFAULT $FALSE,
	due_date    TEXT,
	created_at  TEXT NOT NULL,
	sort_order  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);

CREATE TABLE IF NOT EXISTS schedule_tasks (
	id          $SERIAL,
	user_id     INTEGER NOT NULL REFERENCES users(id),
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL,
	end_date    TEXT,
	start_hour  REAL NOT NULL,
	duration    REAL NOT NULL,
	completed   $BOOL NOT NULL DEFAULT $FALSE,
	in_progress $BOOL NOT NULL DEFAULT $FALSE,
	color       TEXT,
	recurrence  TEXT NOT NULL DEFAULT 'none'
);
CREATE INDEX IF NOT EXISTS idx_schedule_tasks_user_date ON schedule_tasks(user_id, date);

CREATE TABLE IF NOT EXISTS templates (
	id          $SERIAL,
	user_id     INTEGER NOT NULL REFERENCES users(id),
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	duration    REAL NOT NULL DEFAULT 1.0,
	color       TEXT,
	recurrence  TEXT NOT NULL DEFAULT 'none'
);

CREATE TABLE IF NOT EXISTS events (
	id         $SERIAL,
	user_id    INTEGER NOT NULL REFERENCES users(id),
	title      TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date   TEXT,
	priority   INTEGER NOT NULL DEFAULT 2,
	tag        TEXT,
	tag_color  TEXT,
	completed  $BOOL NOT NULL DEFAULT $FALSE,
	rrule_text TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_user_start ON events(user_id, start_date);

CREATE TABLE IF NOT EXISTS subtasks (
	id         $SERIAL,
	event_id   INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	text       TEXT NOT NULL,
	done       $BOOL NOT NULL DEFAULT $FALSE,
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS password_entries (
	id         $SERIAL,
	user_id    INTEGER NOT NULL REFERENCES users(id),
	name       TEXT NOT NULL,
	password   TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diario_temas (
	id             $SERIAL,
	user_id        INTEGER NOT NULL REFERENCES users(id),
	titulo         TEXT NOT NULL,
	fecha_creacion TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diario_categorias (
	id      $SERIAL,
	tema_id INTEGER NOT NULL REFERENCES diario_temas(id) ON DELETE CASCADE,
	nombre  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diario_subcategorias (
	id           $SERIAL,
	categoria_id INTEGER NOT NULL REFERENCES diario_categorias(id) ON DELETE CASCADE,
	nombre       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diario_apartados (
	id              $SERIAL,
	user_id         INTEGER NOT NULL REFERENCES users(id),
	contenido       TEXT NOT NULL,
	fecha_creacion  TEXT NOT NULL,
	tema_id         INTEGER REFERENCES diario_temas(id) ON DELETE CASCADE,
	categoria_id    INTEGER REFERENCES diario_categorias(id) ON DELETE CASCADE,
	subcategoria_id INTEGER REFERENCES diario_subcategorias(id) ON DELETE CASCADE
);
`

// Migrate creates the schema if it does not exist. Idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	var repl *strings.Replacer
	switch s.dialect {
	case Postgres:
		repl = strings.NewReplacer(
			"$SERIAL", "BIGSERIAL PRIMARY KEY",
			"$BOOL", "BOOLEAN",
			"$FALSE", "FALSE",
		)
	default:
		repl = strings.NewReplacer(
			"$SERIAL", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"$BOOL", "INTEGER",
			"$FALSE", "0",
		)
	}
	if _, err := s.db.ExecContext(ctx, repl.Replace(schemaDDL)); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
