package database

const schema = `
-- Named whole-value slots (watchlist, theme, search history)
CREATE TABLE kv_store (
	slot TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

-- Catalog responses keyed by request signature
CREATE TABLE response_cache (
	cache_key TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// migrations contains incremental schema changes
// Each migration is applied in order based on the current user_version
// migrations[0] is empty because version 0 uses the base schema
var migrations = []string{
	"",
}
