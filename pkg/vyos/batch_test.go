package vyos

import (
	"errors"
	"testing"

	"github.com/vygate-network/vygate/pkg/util"
)

// checkInvariant asserts IsEmpty() == (Len() == 0), which must hold after
// every mutating call.
func checkInvariant(t *testing.T, b *Batch) {
	t.Helper()
	if b.IsEmpty() != (b.Len() == 0) {
		t.Fatalf("invariant violated: IsEmpty=%v Len=%d", b.IsEmpty(), b.Len())
	}
}

func TestBatch_AddSkipsEmptyPath(t *testing.T) {
	b := NewBatch(testSchema, "1.4")

	b.AddSet(nil).AddSetValue(Path{}, "v").AddDelete(nil)
	checkInvariant(t, b)
	if !b.IsEmpty() {
		t.Errorf("empty paths must never append; log: %v", b.Operations())
	}
	if b.State() != StateEmpty {
		t.Errorf("state = %s, want empty", b.State())
	}
}

func TestBatch_AppendAndOrder(t *testing.T) {
	b := NewBatch(testSchema, "1.4")

	b.AddSet(Path{"a"}).AddSetValue(Path{"b"}, "1").AddDelete(Path{"c"})
	checkInvariant(t, b)

	ops := b.Operations()
	if len(ops) != 3 {
		t.Fatalf("Len = %d, want 3", len(ops))
	}
	if ops[0].Op != OpSet || ops[1].Value != "1" || ops[2].Op != OpDelete {
		t.Errorf("insertion order not preserved: %v", ops)
	}
	if b.State() != StateAccumulating {
		t.Errorf("state = %s, want accumulating", b.State())
	}
}

func TestBatch_OperationsIsACopy(t *testing.T) {
	b := NewBatch(testSchema, "1.4")
	b.AddSet(Path{"a"})

	ops := b.Operations()
	ops[0].Path = Path{"mutated"}
	if !b.Operations()[0].Path.Equal(Path{"a"}) {
		t.Error("Operations() must return a read-only snapshot")
	}
}

func TestBatch_Clear(t *testing.T) {
	b := NewBatch(testSchema, "1.4")
	b.AddSet(Path{"a"}).AddSet(Path{"b"})

	b.Clear()
	checkInvariant(t, b)
	if !b.IsEmpty() || len(b.Operations()) != 0 {
		t.Error("Clear must discard all instructions")
	}
	if b.State() != StateEmpty {
		t.Errorf("state after Clear = %s, want empty", b.State())
	}

	// clearing an already-empty batch is fine
	b.Clear()
	checkInvariant(t, b)
}

func TestBatch_SetValueRequired(t *testing.T) {
	b := NewBatch(testSchema, "1.4")
	err := b.set("scalar", Args{"id": "A"}, "")
	if !errors.Is(err, util.ErrValidationFailed) {
		t.Fatalf("got %v, want validation error", err)
	}
	if !b.IsEmpty() {
		t.Error("failed operation must not append an instruction")
	}
}

func TestBatch_SetSkipsAbsentField(t *testing.T) {
	b := NewBatch(testSchema, "1.4")
	if err := b.set("skipped", nil, ""); err != nil {
		t.Fatal(err)
	}
	if !b.IsEmpty() {
		t.Error("absent field must be a silent no-op")
	}
}

func TestBatch_GatedErrorLeavesCountUnchanged(t *testing.T) {
	b := NewBatch(testSchema, "1.4")
	b.AddSet(Path{"a"})
	before := b.Len()

	err := b.set("gated", nil, "")
	if !errors.Is(err, util.ErrNotSupported) {
		t.Fatalf("got %v, want capability error", err)
	}
	if b.Len() != before {
		t.Errorf("Len changed %d -> %d on capability error", before, b.Len())
	}
}

func TestBatch_SealLifecycle(t *testing.T) {
	b := NewBatch(testSchema, "1.5")
	b.AddSet(Path{"a"})

	ins := b.Seal()
	if len(ins) != 1 {
		t.Fatalf("Seal returned %d instructions", len(ins))
	}
	if b.State() != StateSubmitted {
		t.Errorf("state = %s, want submitted", b.State())
	}

	b.MarkCommitted()
	if b.State() != StateCommitted {
		t.Errorf("state = %s, want committed", b.State())
	}
}

func TestBatch_MarkRejected(t *testing.T) {
	b := NewBatch(testSchema, "1.5")
	b.AddSet(Path{"a"})
	b.Seal()
	b.MarkRejected()
	if b.State() != StateRejected {
		t.Errorf("state = %s, want rejected", b.State())
	}
}

func TestBatch_ReuseAfterSubmitPanics(t *testing.T) {
	b := NewBatch(testSchema, "1.5")
	b.AddSet(Path{"a"})
	b.Seal()

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s after Seal must panic", name)
			}
		}()
		fn()
	}

	assertPanics("AddSet", func() { b.AddSet(Path{"x"}) })
	assertPanics("AddDelete", func() { b.AddDelete(Path{"x"}) })
	assertPanics("Clear", func() { b.Clear() })
	assertPanics("Seal", func() { b.Seal() })
}

func TestBatch_Preview(t *testing.T) {
	b := NewBatch(testSchema, "1.4")
	b.AddSetValue(Path{"top", "node", "A", "leaf"}, "v1")
	b.AddDelete(Path{"top", "node", "B"})

	lines := b.Preview()
	if len(lines) != 2 {
		t.Fatalf("Preview lines = %d", len(lines))
	}
	if lines[0] != "set top node A leaf 'v1'" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "delete top node B" {
		t.Errorf("line 1 = %q", lines[1])
	}
}
