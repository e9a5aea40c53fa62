package engine

import "time"

// Stage identifies which rule family produced an action.
type Stage string

const (
	StageKeyword   Stage = "keyword"
	StageExtension Stage = "extension"
	StageMime      Stage = "mime"
	StageArchive   Stage = "archive"
	StageError     Stage = "error"
)

// Action is one planned or performed move, or a per-file failure.
type Action struct {
	Stage       Stage  `json:"stage"`
	Rule        string `json:"rule,omitempty"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Counts tallies one run.
type Counts struct {
	Scanned   int `json:"scanned"`
	Keyword   int `json:"keyword"`
	Extension int `json:"extension"`
	Mime      int `json:"mime"`
	Archived  int `json:"archived"`
	Errors    int `json:"errors"`
}

// Summary is the full result of a run.
type Summary struct {
	RunID      string    `json:"run_id"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Counts     Counts    `json:"counts"`
	Actions    []Action  `json:"actions"`
}
