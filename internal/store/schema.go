package store

// schemaVersion is the current memo schema. Version 1 keyed resolutions by
// (stats_path, run) only; it is dropped on open since the memo is derivable.
const schemaVersion = 2

var schemaV2 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS resolutions (
	stats_path TEXT NOT NULL,
	scheme TEXT NOT NULL,
	run INTEGER NOT NULL,
	filename TEXT NOT NULL,
	path TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (stats_path, scheme, run)
);
`
