package vyos

import (
	"github.com/vygate-network/vygate/pkg/util"
)

// BatchState tracks a batch through its lifecycle:
// Empty -> Accumulating -> Submitted -> {Committed | Rejected}.
type BatchState int

const (
	StateEmpty BatchState = iota
	StateAccumulating
	StateSubmitted
	StateCommitted
	StateRejected
)

func (s BatchState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateSubmitted:
		return "submitted"
	case StateCommitted:
		return "committed"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// Batch accumulates an ordered instruction list for one feature family and
// device version. One instance per management request; exclusively owned by
// its creator, populated, handed once to a device session, and discarded.
// Mutation after submission is a programming error and panics.
type Batch struct {
	mapper *Mapper
	log    []Instruction
	state  BatchState
}

// NewBatch creates a batch bound to a family schema and a raw device
// version string.
func NewBatch(s *Schema, rawVersion string) *Batch {
	return &Batch{mapper: NewMapper(s, rawVersion)}
}

// NewBatchWithMapper creates a batch over an already-resolved mapper,
// typically from a Registry.
func NewBatchWithMapper(m *Mapper) *Batch {
	return &Batch{mapper: m}
}

// Family returns the feature family name.
func (b *Batch) Family() string { return b.mapper.Family() }

// Version returns the resolved firmware generation.
func (b *Batch) Version() Version { return b.mapper.Version() }

// State returns the batch lifecycle state.
func (b *Batch) State() BatchState { return b.state }

// Capabilities returns the capability matrix for the bound version.
func (b *Batch) Capabilities() *CapabilityMatrix { return b.mapper.Capabilities() }

// AddSet appends a presence-node set iff path is non-empty; empty paths are
// skipped silently (the field does not exist at this version).
func (b *Batch) AddSet(p Path) *Batch {
	return b.AddSetValue(p, "")
}

// AddSetValue appends a scalar assignment iff path is non-empty.
func (b *Batch) AddSetValue(p Path, value string) *Batch {
	b.ensureMutable()
	if p.IsEmpty() {
		return b
	}
	b.append(Instruction{Op: OpSet, Path: p.Clone(), Value: value})
	return b
}

// AddDelete appends a subtree delete iff path is non-empty.
func (b *Batch) AddDelete(p Path) *Batch {
	b.ensureMutable()
	if p.IsEmpty() {
		return b
	}
	b.append(Instruction{Op: OpDelete, Path: p.Clone()})
	return b
}

// Operations returns a read-only snapshot of the instruction log in
// insertion order. Mutating the returned slice does not affect the batch.
func (b *Batch) Operations() []Instruction {
	out := make([]Instruction, len(b.log))
	copy(out, b.log)
	return out
}

// Len returns the number of accumulated instructions.
func (b *Batch) Len() int { return len(b.log) }

// IsEmpty reports whether no instructions have accumulated.
// Always equal to Len() == 0.
func (b *Batch) IsEmpty() bool { return len(b.log) == 0 }

// Clear discards all accumulated instructions, returning the batch to its
// initial empty state. Used when an in-progress construction is abandoned.
func (b *Batch) Clear() {
	b.ensureMutable()
	b.log = nil
	b.state = StateEmpty
}

// Seal transitions the batch to Submitted and returns the final instruction
// list. Called exactly once, by the device session, synchronously with the
// network call. Sealing twice panics.
func (b *Batch) Seal() []Instruction {
	b.ensureMutable()
	b.state = StateSubmitted
	return b.Operations()
}

// MarkCommitted records that the device applied the batch.
func (b *Batch) MarkCommitted() {
	if b.state != StateSubmitted {
		panic("vyos: MarkCommitted on unsubmitted batch")
	}
	b.state = StateCommitted
}

// MarkRejected records that the device rejected the batch (or it never
// reached the device).
func (b *Batch) MarkRejected() {
	if b.state != StateSubmitted {
		panic("vyos: MarkRejected on unsubmitted batch")
	}
	b.state = StateRejected
}

func (b *Batch) ensureMutable() {
	if b.state >= StateSubmitted {
		panic("vyos: batch reused after submit")
	}
}

func (b *Batch) append(in Instruction) {
	b.log = append(b.log, in)
	b.state = StateAccumulating
}

// set resolves a named operation and appends a Set instruction. Resolution
// errors (unknown op, capability, missing argument) leave the log unchanged.
// Operations that assign a scalar fail validation on an empty value before
// anything is appended.
func (b *Batch) set(op string, args Args, value string) error {
	b.ensureMutable()
	p, err := b.mapper.Resolve(op, args)
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}
	if b.mapper.needsValue(op) && value == "" {
		return util.Validationf("%s: value required", op)
	}
	b.append(Instruction{Op: OpSet, Path: p, Value: value})
	return nil
}

// delete resolves a named operation and appends a Delete instruction.
func (b *Batch) delete(op string, args Args) error {
	b.ensureMutable()
	p, err := b.mapper.Resolve(op, args)
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}
	b.append(Instruction{Op: OpDelete, Path: p})
	return nil
}

// Preview renders the accumulated instructions as VyOS CLI lines, one per
// instruction. Used by dry-run output.
func (b *Batch) Preview() []string {
	lines := make([]string, len(b.log))
	for i, in := range b.log {
		lines[i] = in.String()
	}
	return lines
}
