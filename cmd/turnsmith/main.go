// Package main implements the turnsmith CLI: it reads one or more chat
// transcripts, reconstructs the project(s) each one describes, and writes
// the result to an output directory.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"turnsmith/internal/config"
	"turnsmith/internal/driver"
	"turnsmith/internal/fsadapter"
	"turnsmith/internal/logging"
	"turnsmith/internal/summary"
	"turnsmith/internal/watch"
)

var (
	verbose   bool
	outputDir string
	watchMode bool

	// loggingMu serializes runOne end-to-end. internal/logging is a
	// process-wide singleton (one workspace's worth of category loggers
	// and one audit file at a time), so batch mode's worker pool still
	// gives errgroup-managed bounded fan-out and error aggregation, but
	// can't let two runs hold the logging singleton configured for two
	// different output roots at once.
	loggingMu sync.Mutex
)

var rootCmd = &cobra.Command{
	Use:   "turnsmith <transcript-file> [transcript-file...]",
	Short: "Reconstruct a project tree from an AI chat transcript",
	Long: `turnsmith reads a plain-text chat transcript between an operator and an
AI assistant, extracts the file-modification intents embedded in the
assistant's fenced code blocks, and applies them in order to an output
directory so the resulting tree mirrors the project the assistant
described.

Given more than one transcript, each is reconstructed into its own
subdirectory of the output root, one run at a time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReconstruct,
}

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output root (default: reconstructed_project)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-run whenever a transcript file changes")
}

// runReconstruct resolves the batch's output roots, runs every transcript
// once, and — if --watch was given — keeps watching until interrupted.
func runReconstruct(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	batchRoot, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("output root unresolvable: %w", err)
	}

	outputFor := func(transcriptPath string) string {
		if len(args) == 1 {
			return batchRoot
		}
		base := filepath.Base(transcriptPath)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join(batchRoot, base)
	}

	runAll := func() error {
		g := new(errgroup.Group)
		g.SetLimit(4)
		for _, transcriptPath := range args {
			transcriptPath := transcriptPath
			g.Go(func() error {
				_, err := runOne(transcriptPath, outputFor(transcriptPath))
				return err
			})
		}
		return g.Wait()
	}

	if err := runAll(); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}

	onChange := func(path string) {
		if _, err := runOne(path, outputFor(path)); err != nil {
			fmt.Fprintf(os.Stderr, "watch: re-run of %s failed: %v\n", path, err)
		}
	}

	w, err := watch.New(onChange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: watch mode unavailable: %v\n", err)
		return nil
	}
	if err := w.Add(args...); err != nil {
		fmt.Fprintf(os.Stderr, "warning: watch mode unavailable: %v\n", err)
		return nil
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	fmt.Fprintln(os.Stderr, "watching for changes, press Ctrl-C to stop")
	<-ctx.Done()
	return nil
}

// runOne reconstructs a single transcript into outputRoot, wiring up
// per-run logging, an audit trail, and a reporter, and returns the run's
// summary stats.
func runOne(transcriptPath, outputRoot string) (summary.Stats, error) {
	loggingMu.Lock()
	defer loggingMu.Unlock()

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return summary.Stats{}, fmt.Errorf("transcript unreadable: %w", err)
	}

	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return summary.Stats{}, fmt.Errorf("output root uncreatable: %w", err)
	}

	if err := logging.Initialize(outputRoot); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize file logging: %v\n", err)
	}
	defer logging.CloseAll()

	if err := logging.InitAudit(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize audit log: %v\n", err)
	}
	defer logging.CloseAudit()

	reporter, err := logging.NewReporter(verbose)
	if err != nil {
		return summary.Stats{}, fmt.Errorf("failed to initialize reporter: %w", err)
	}
	defer reporter.Sync()

	runID := uuid.NewString()
	audit := logging.AuditWithRun(runID)
	audit.RunStart(transcriptPath)

	fs := fsadapter.New(outputRoot)
	d := driver.New(fs, reporter, audit)
	applied, notApplied := d.Run(string(data))

	audit.RunEnd(fmt.Sprintf("applied %d operation(s), %d not applied", applied, notApplied))

	stats := summary.Stats{
		Transcript: transcriptPath,
		RunID:      runID,
		Applied:    applied,
		Skipped:    notApplied,
	}
	fmt.Println(summary.Render(stats))
	return stats, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
