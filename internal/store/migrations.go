package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL CHECK(length(trim(title)) > 0),
	description TEXT,
	due_at      TEXT,
	priority    INTEGER NOT NULL DEFAULT 2 CHECK(priority BETWEEN 1 AND 3),
	status      TEXT NOT NULL DEFAULT 'todo' CHECK(status IN ('todo', 'in_progress', 'done')),
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_due_at ON tasks(due_at);
CREATE INDEX IF NOT EXISTS idx_tasks_updated_at ON tasks(updated_at);

CREATE TABLE IF NOT EXISTS subtasks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id    INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	title      TEXT NOT NULL CHECK(length(trim(title)) > 0),
	status     TEXT NOT NULL DEFAULT 'todo' CHECK(status IN ('todo', 'in_progress', 'done')),
	sort_order INTEGER NOT NULL DEFAULT 0 CHECK(sort_order >= 0)
);

CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);

CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL CHECK(length(trim(title)) > 0),
	body       TEXT NOT NULL CHECK(length(trim(body)) > 0),
	tags       TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at);

CREATE TABLE IF NOT EXISTS task_notes (
	task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
	PRIMARY KEY (task_id, note_id)
);

CREATE INDEX IF NOT EXISTS idx_task_notes_note_id ON task_notes(note_id);

CREATE TABLE IF NOT EXISTS reflections (
	day          TEXT PRIMARY KEY CHECK(day GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'),
	mood         INTEGER NOT NULL CHECK(mood BETWEEN 1 AND 5),
	productivity INTEGER NOT NULL CHECK(productivity BETWEEN 1 AND 5),
	text         TEXT,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reminders (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id    INTEGER,
	fire_at    TEXT NOT NULL,
	channel    TEXT NOT NULL DEFAULT 'in_app' CHECK(channel IN ('in_app', 'browser')),
	status     TEXT NOT NULL DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'fired', 'cancelled')),
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reminders_status_fire_at ON reminders(status, fire_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
