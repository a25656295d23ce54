package migrations

// SQLiteMigrations returns the query history schema for SQLite
func SQLiteMigrations() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "Query history table",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS queries (
					id TEXT PRIMARY KEY,
					visible TEXT NOT NULL,
					hidden TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL
				);

				CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at DESC);
			`,
			DownSQL: `
				DROP INDEX IF EXISTS idx_queries_created_at;
				DROP TABLE IF EXISTS queries;
			`,
		},
	}
}
