package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	document   TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS logs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp     TEXT NOT NULL,
	character_key TEXT NOT NULL,
	command_text  TEXT NOT NULL,
	status        TEXT NOT NULL,
	message       TEXT NOT NULL
);
`
