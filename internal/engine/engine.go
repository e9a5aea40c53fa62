package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"broom/internal/config"
	"broom/internal/engine/routing"
	"broom/internal/logging"
)

const archiveRuleName = "archive_fallback"

// Engine executes cleanup runs against a validated rules configuration.
type Engine struct {
	cfg     *config.Config
	logger  *slog.Logger
	matcher *routing.Matcher
	now     func() time.Time
}

// Option customizes engine construction.
type Option func(*Engine)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMatcher overrides the compiled routing matcher, for tests.
func WithMatcher(matcher *routing.Matcher) Option {
	return func(e *Engine) {
		if matcher != nil {
			e.matcher = matcher
		}
	}
}

// New constructs an engine. The config should already have passed Validate.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	e := &Engine{
		cfg:     cfg,
		logger:  logger,
		matcher: routing.NewMatcher(cfg.Routing),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs one cleanup pass. Per-file failures are recorded in the
// summary and never abort the pass; the returned error covers only scan
// failures and context cancellation.
func (e *Engine) Run(ctx context.Context, dryRun bool) (*Summary, error) {
	started := e.now().UTC()
	summary := &Summary{
		RunID:     uuid.NewString(),
		DryRun:    dryRun,
		StartedAt: started,
	}
	logger := e.logger.With(slog.String("run_id", summary.RunID))

	files, err := discoverFiles(e.cfg.Paths.Downloads)
	if err != nil {
		return nil, err
	}
	summary.Counts.Scanned = len(files)
	logger.Info("scan complete",
		slog.String("downloads", e.cfg.Paths.Downloads),
		slog.Int("files", len(files)),
		slog.Bool("dry_run", dryRun))

	archiveDir := filepath.Join(e.cfg.Paths.ArchiveBase, started.Format("2006-01-02"))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		source := filepath.Join(e.cfg.Paths.Downloads, name)
		action := e.plan(source, name, archiveDir)
		summary.Counts.bump(action.Stage)

		if !dryRun {
			if err := e.perform(action); err != nil {
				logger.Warn("move failed",
					slog.String("source", source),
					slog.String("destination", action.Destination),
					slog.Any("error", err))
				summary.Counts.Errors++
				summary.Actions = append(summary.Actions, Action{
					Stage:  StageError,
					Source: source,
					Error:  err.Error(),
				})
				continue
			}
			logger.Info("moved",
				slog.String("stage", string(action.Stage)),
				slog.String("rule", action.Rule),
				slog.String("source", source),
				slog.String("destination", action.Destination))
		}
		summary.Actions = append(summary.Actions, action)
	}

	summary.FinishedAt = e.now().UTC()
	logger.Info("run finished",
		slog.Int("scanned", summary.Counts.Scanned),
		slog.Int("errors", summary.Counts.Errors))
	return summary, nil
}

func (e *Engine) plan(source, name, archiveDir string) Action {
	if dec, ok := e.matcher.Match(source); ok {
		return Action{
			Stage:       Stage(dec.Family),
			Rule:        dec.Rule,
			Source:      source,
			Destination: collisionSafeTarget(dec.Target, name),
		}
	}
	return Action{
		Stage:       StageArchive,
		Rule:        archiveRuleName,
		Source:      source,
		Destination: collisionSafeTarget(archiveDir, name),
	}
}

// perform moves one file. Routing targets were validated at load time, so a
// missing parent is an error for every stage except the archive, whose date
// folder is created on first use.
func (e *Engine) perform(action Action) error {
	parent := filepath.Dir(action.Destination)
	if _, err := os.Stat(parent); errors.Is(err, fs.ErrNotExist) {
		if action.Stage != StageArchive {
			return fmt.Errorf("target directory missing: %s", parent)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create archive folder: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("stat target directory: %w", err)
	}
	return moveFile(action.Source, action.Destination)
}

func (c *Counts) bump(stage Stage) {
	switch stage {
	case StageKeyword:
		c.Keyword++
	case StageExtension:
		c.Extension++
	case StageMime:
		c.Mime++
	case StageArchive:
		c.Archived++
	}
}
