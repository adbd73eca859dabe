package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS recent_queries (
    query      TEXT PRIMARY KEY,
    last_used  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_recent_queries_used ON recent_queries(last_used);
`
