// Package driver orchestrates the pipeline: it iterates assistant turns,
// extracts file operations from each, and applies them in order against
// the filesystem adapter, consulting the patch engines for anything
// classified as a partial patch.
package driver

import (
	"strings"

	"turnsmith/internal/diff"
	"turnsmith/internal/fsadapter"
	"turnsmith/internal/logging"
	"turnsmith/internal/patch"
	"turnsmith/internal/transcript"
)

// Reporter is the subset of logging.Reporter the Driver depends on,
// narrowed to an interface so tests can supply a fake.
type Reporter interface {
	Creating(path string)
	Updating(path string)
	Patching(path string)
	Skipping(path, reason string)
	PatchApplied(path string)
	PatchFailed(path string)
	PatchDiff(path, rendered string)
	SnippetApplied(path string)
	SnippetFailed(path string)
	Heuristic(path, reason string)
	Segmented(turnCount int)
	Done(opCount int)
}

// Audit is the subset of logging.AuditLogger the Driver depends on.
type Audit interface {
	FileOp(eventType logging.AuditEventType, path string, success bool, reason string)
}

// Driver wires the transcript pipeline to a filesystem adapter. It holds
// no state between runs; every field is a collaborator supplied at
// construction.
type Driver struct {
	fs       *fsadapter.Adapter
	reporter Reporter
	audit    Audit
}

// New builds a Driver writing to fs, reporting progress via reporter and
// recording outcomes via audit.
func New(fs *fsadapter.Adapter, reporter Reporter, audit Audit) *Driver {
	return &Driver{fs: fs, reporter: reporter, audit: audit}
}

// Run processes an entire transcript: segment into turns, extract each
// turn's operations, and apply them — in turn order, and in code-block
// order within a turn — before moving to the next turn. A failing patch
// does not abort the run; it is reported and the Driver continues. It
// returns the number of operations that produced a write and the number
// that did not (skipped or failed).
func (d *Driver) Run(transcriptText string) (applied, notApplied int) {
	turns := transcript.Segment(transcriptText)
	d.reporter.Segmented(len(turns))

	for _, turn := range turns {
		for _, op := range transcript.Extract(turn) {
			if d.apply(op) {
				applied++
			} else {
				notApplied++
			}
		}
	}

	d.reporter.Done(applied)
	return applied, notApplied
}

// apply resolves one FileOperation against the current filesystem state
// and performs exactly the action the classifier+existence matrix calls
// for. It returns whether the operation produced a write.
func (d *Driver) apply(op transcript.FileOperation) bool {
	exists := d.fs.Exists(op.Path)
	isPatch, reason := transcript.IsPatch(op.Path, op.Content)
	if reason != "" {
		d.reporter.Heuristic(op.Path, reason)
	}

	switch {
	case !exists && !isPatch:
		d.reporter.Creating(op.Path)
		d.write(op.Path, op.Content)
		d.audit.FileOp(logging.AuditCreate, op.Path, true, "")
		return true

	case !exists && isPatch:
		d.reporter.Skipping(op.Path, "cannot patch a nonexistent file")
		d.audit.FileOp(logging.AuditSkip, op.Path, false, "target file does not exist")
		return false

	case exists && !isPatch:
		d.reporter.Updating(op.Path)
		d.write(op.Path, op.Content)
		d.audit.FileOp(logging.AuditOverwrite, op.Path, true, "")
		return true

	case isCargoToml(op.Path):
		return d.applyTOMLPatch(op)

	default:
		return d.applyGenericPatch(op)
	}
}

func (d *Driver) applyTOMLPatch(op transcript.FileOperation) bool {
	d.reporter.Patching(op.Path)
	current := d.fs.ReadToString(op.Path)

	merged, err := patch.MergeTOML(current, op.Content)
	if err != nil {
		d.reporter.PatchFailed(op.Path)
		d.audit.FileOp(logging.AuditPatchTOML, op.Path, false, err.Error())
		return false
	}

	d.write(op.Path, merged)
	d.reporter.PatchApplied(op.Path)
	d.reporter.PatchDiff(op.Path, diff.ComputeDiff(op.Path, op.Path, current, merged).Render())
	d.audit.FileOp(logging.AuditPatchTOML, op.Path, true, "")
	return true
}

func (d *Driver) applyGenericPatch(op transcript.FileOperation) bool {
	d.reporter.Patching(op.Path)
	current := d.fs.ReadToString(op.Path)

	result := patch.ApplyGeneric(current, op.Content)
	if !result.Applied {
		d.reporter.PatchFailed(op.Path)
		d.audit.FileOp(logging.AuditPatchGeneric, op.Path, false, "no strategy applied")
		return false
	}

	d.write(op.Path, result.Content)
	if result.Strategy == "snippet" {
		d.reporter.SnippetApplied(op.Path)
		d.audit.FileOp(logging.AuditPatchSnippet, op.Path, true, "")
	} else {
		d.reporter.PatchApplied(op.Path)
		d.audit.FileOp(logging.AuditPatchGeneric, op.Path, true, "")
	}
	d.reporter.PatchDiff(op.Path, diff.ComputeDiff(op.Path, op.Path, current, result.Content).Render())
	return true
}

// write delegates to the adapter, which creates any missing parent
// directories itself. Write failures are deliberately swallowed here:
// per the error taxonomy, only input-acquisition failures are fatal.
func (d *Driver) write(path, content string) {
	_ = d.fs.Write(path, content)
}

func isCargoToml(path string) bool {
	return strings.HasSuffix(path, "Cargo.toml")
}
