package transcript

import "testing"

func TestExtract_SimpleCreate(t *testing.T) {
	turn := TurnBody("### src/main.rs\n```rust\nfn main() {}\n```\n")
	ops := Extract(turn)
	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	if ops[0].Path != "src/main.rs" || ops[0].Content != "fn main() {}\n" {
		t.Fatalf("unexpected op: %+v", ops[0])
	}
}

func TestExtract_DropsBlockWithoutPath(t *testing.T) {
	turn := TurnBody("no path mentioned anywhere\n```\njust some code\n```\n")
	ops := Extract(turn)
	if len(ops) != 0 {
		t.Fatalf("expected 0 operations, got %d", len(ops))
	}
}

func TestExtract_PreservesBlockOrder(t *testing.T) {
	turn := TurnBody("### a.txt\n```\nAAA\n```\n### b.txt\n```\nBBB\n```\n")
	ops := Extract(turn)
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
	if ops[0].Path != "a.txt" || ops[1].Path != "b.txt" {
		t.Fatalf("unexpected order: %+v", ops)
	}
}
