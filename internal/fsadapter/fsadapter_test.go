package fsadapter

import (
	"path/filepath"
	"testing"
)

func TestWriteThenRead(t *testing.T) {
	root := t.TempDir()
	a := New(root)

	if err := a.Write("src/main.rs", "fn main() {}\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Exists("src/main.rs") {
		t.Fatalf("expected file to exist")
	}
	if got := a.ReadToString("src/main.rs"); got != "fn main() {}\n" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestExists_MissingFile(t *testing.T) {
	a := New(t.TempDir())
	if a.Exists("nope.txt") {
		t.Fatalf("expected file to not exist")
	}
}

func TestReadToString_MissingFileReturnsEmpty(t *testing.T) {
	a := New(t.TempDir())
	if got := a.ReadToString("nope.txt"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestSafeJoin_RejectsAbsolutePath(t *testing.T) {
	a := New(t.TempDir())
	if _, ok := a.SafeJoin("/etc/passwd"); ok {
		t.Fatalf("expected absolute path to be rejected")
	}
}

func TestSafeJoin_RejectsEscapingTraversal(t *testing.T) {
	a := New(t.TempDir())
	if _, ok := a.SafeJoin("../../etc/passwd"); ok {
		t.Fatalf("expected traversal escape to be rejected")
	}
}

func TestSafeJoin_AllowsNestedRelativePath(t *testing.T) {
	a := New(t.TempDir())
	full, ok := a.SafeJoin("src/lib/util.rs")
	if !ok {
		t.Fatalf("expected nested relative path to be allowed")
	}
	if filepath.Base(full) != "util.rs" {
		t.Fatalf("unexpected resolved path: %q", full)
	}
}

func TestEnsureDir(t *testing.T) {
	a := New(t.TempDir())
	if err := a.EnsureDir("src/nested"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.EnsureDir("src/nested"); err != nil {
		t.Fatalf("expected idempotent EnsureDir, got: %v", err)
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	a := New(t.TempDir())
	if err := a.Write("a.txt", "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Write("a.txt", "v2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.ReadToString("a.txt"); got != "v2" {
		t.Fatalf("unexpected content: %q", got)
	}
}
