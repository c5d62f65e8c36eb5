// Package logging also provides an append-only JSON audit trail of every
// file operation a run performs, independent of the category log files.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditEventType names the kind of file-operation outcome being recorded.
type AuditEventType string

const (
	AuditRunStart     AuditEventType = "run_start"
	AuditRunEnd       AuditEventType = "run_end"
	AuditCreate       AuditEventType = "create"
	AuditOverwrite    AuditEventType = "overwrite"
	AuditPatchTOML    AuditEventType = "patch_toml"
	AuditPatchGeneric AuditEventType = "patch_generic"
	AuditPatchSnippet AuditEventType = "patch_snippet"
	AuditSkip         AuditEventType = "skip"
)

// AuditEvent is one line of the audit trail.
type AuditEvent struct {
	Timestamp int64          `json:"ts"`
	RunID     string         `json:"run"`
	EventType AuditEventType `json:"event"`
	Path      string         `json:"path,omitempty"`
	Success   bool           `json:"success"`
	Reason    string         `json:"reason,omitempty"`
	Message   string         `json:"msg,omitempty"`
}

var (
	auditFile   *os.File
	auditMu     sync.Mutex
	auditLogger *AuditLogger
)

// AuditLogger records file-operation outcomes for a single run.
type AuditLogger struct {
	runID string
}

// InitAudit opens the audit log file for the run. A no-op when debug mode
// is disabled.
func InitAudit() error {
	if !IsCategoryEnabled(CategoryDriver) {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		return nil
	}

	date := time.Now().Format("2006-01-02")
	auditPath := filepath.Join(logsDir, fmt.Sprintf("%s_audit.log", date))

	file, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	auditFile = file
	return nil
}

// CloseAudit closes the audit log file.
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// Audit returns the global, unscoped audit logger.
func Audit() *AuditLogger {
	if auditLogger == nil {
		auditLogger = &AuditLogger{}
	}
	return auditLogger
}

// AuditWithRun returns an audit logger that stamps every event with runID.
func AuditWithRun(runID string) *AuditLogger {
	return &AuditLogger{runID: runID}
}

// Log writes an audit event as a single JSON line. A missing timestamp is
// filled in with the call time.
func (a *AuditLogger) Log(event AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile == nil {
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	if event.RunID == "" {
		event.RunID = a.runID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	auditFile.Write(data)
	auditFile.Write([]byte("\n"))
}

// FileOp is a convenience wrapper for recording one file operation's
// outcome.
func (a *AuditLogger) FileOp(eventType AuditEventType, path string, success bool, reason string) {
	a.Log(AuditEvent{
		EventType: eventType,
		Path:      path,
		Success:   success,
		Reason:    reason,
	})
}

// RunStart records the beginning of a run.
func (a *AuditLogger) RunStart(message string) {
	a.Log(AuditEvent{EventType: AuditRunStart, Success: true, Message: message})
}

// RunEnd records the end of a run.
func (a *AuditLogger) RunEnd(message string) {
	a.Log(AuditEvent{EventType: AuditRunEnd, Success: true, Message: message})
}
