package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reporter prints the human-readable progress lines a run produces:
// category tags like [CREATING]/[PATCHING] as each FileOperation is about
// to be applied, and outcome tags like [PATCH APPLIED] once it resolves.
// The format is informational only; no stability is promised across
// versions.
type Reporter struct {
	log *zap.Logger
}

// NewReporter builds a Reporter writing colored, human-facing output to
// the console. verbose raises the level to debug.
func NewReporter(verbose bool) (*Reporter, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.TimeKey = ""
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reporter: %w", err)
	}
	return &Reporter{log: log}, nil
}

// Sync flushes the underlying zap logger. Call at shutdown.
func (r *Reporter) Sync() {
	_ = r.log.Sync()
}

func (r *Reporter) Creating(path string) { r.log.Info(fmt.Sprintf("[CREATING] %s", path)) }
func (r *Reporter) Updating(path string) { r.log.Info(fmt.Sprintf("[UPDATING] %s", path)) }
func (r *Reporter) Patching(path string) { r.log.Info(fmt.Sprintf("[PATCHING] %s", path)) }
func (r *Reporter) Skipping(path, reason string) {
	r.log.Warn(fmt.Sprintf("[SKIPPING] %s: %s", path, reason))
}

func (r *Reporter) PatchApplied(path string) {
	r.log.Info(fmt.Sprintf("[PATCH APPLIED] %s", path))
}

func (r *Reporter) PatchFailed(path string) {
	r.log.Warn(fmt.Sprintf("[PATCH FAILED] %s", path))
}

// PatchDiff prints a unified-style preview of what a patch changed. It logs
// at debug level only: the preview is verbose-mode detail, not a routine
// outcome line.
func (r *Reporter) PatchDiff(path, rendered string) {
	if rendered == "" {
		return
	}
	r.log.Debug(fmt.Sprintf("[PATCH DIFF] %s\n%s", path, rendered))
}

func (r *Reporter) SnippetApplied(path string) {
	r.log.Info(fmt.Sprintf("[SNIPPET APPLIED] %s", path))
}

func (r *Reporter) SnippetFailed(path string) {
	r.log.Warn(fmt.Sprintf("[SNIPPET FAILED] %s", path))
}

// Heuristic logs which classifier rule fired for a (path, content) pair,
// at debug level only — this is diagnostic detail, not a user-facing
// outcome.
func (r *Reporter) Heuristic(path, reason string) {
	r.log.Debug(fmt.Sprintf("HEURISTIC %s: %s", path, reason))
}

// Segmented reports how many assistant turns a transcript yielded.
func (r *Reporter) Segmented(turnCount int) {
	r.log.Info(fmt.Sprintf("segmented %d assistant turn(s)", turnCount))
}

// Done reports run completion.
func (r *Reporter) Done(opCount int) {
	r.log.Info(fmt.Sprintf("done: applied %d operation(s)", opCount))
}
