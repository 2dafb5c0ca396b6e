package db

// SchemaSQL is the single source of truth for the run-history schema.
// Tests load it via GetSchemaSQL() instead of hardcoding CREATE TABLE
// statements, so repository code and tests cannot drift apart.
const SchemaSQL = `
-- Escalation runs (audit trail, one row per triggered run)
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	considered INTEGER NOT NULL DEFAULT 0,
	sent_count INTEGER NOT NULL DEFAULT 0,
	sent_ids TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// GetSchemaSQL returns the schema for test database setup.
func GetSchemaSQL() string {
	return SchemaSQL
}
