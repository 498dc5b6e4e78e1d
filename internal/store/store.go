// Package store memoizes time-series resolutions for callers that query the
// same (statistics artifact, run) repeatedly. The discovery core never uses
// it; it sits in front of the aggregator in the CLI.
package store

// DefaultDBPath is the default relative path for the SQLite memo.
// Open creates the parent directory.
const DefaultDBPath = ".resultscope/resolutions.db"

// Resolution records which time-series file one statistics row resolved to
// under one naming scheme.
type Resolution struct {
	StatsPath string // statistics artifact the run index refers to
	Scheme    string // naming scheme fingerprint, see config.Naming.Key
	Run       int
	Filename  string // companion filename, e.g. IEA_22_Semi_0_83.p
	Path      string // full companion path
	CreatedAt string // RFC 3339, set on save when empty
}

// Store is the memo facade. Implementations are SQLite or in-memory.
type Store interface {
	// GetResolution returns the memoized resolution, or nil if there is none.
	GetResolution(statsPath, scheme string, run int) (*Resolution, error)
	// SaveResolution inserts or replaces the resolution for (StatsPath, Scheme, Run).
	SaveResolution(r *Resolution) error
	// ListResolutions returns the resolutions of one statistics artifact
	// under one scheme, ordered by run.
	ListResolutions(statsPath, scheme string) ([]*Resolution, error)
	Close() error
}
