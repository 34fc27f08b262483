// Package vyos compiles semantic configuration operations into the ordered
// set/delete instruction batches understood by the VyOS HTTP API.
//
// Each feature family (firewall groups, firewall rule sets, NAT, DHCP,
// routing policy) declares its command grammar as a declarative schema table:
// operation name -> path token template, with per-version overrides. One
// generic mapper engine interprets the tables, so supporting a new firmware
// generation means editing data, not duplicating code.
package vyos

import (
	"encoding/json"
	"strings"
)

// Path is an ordered token sequence addressing one node in the device's
// configuration tree. Tokens are never empty. A nil/zero-length Path means
// "this field does not exist at the resolved version" and is skipped by
// batch append operations.
type Path []string

// IsEmpty reports whether the path has no tokens.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Equal reports whether two paths have identical token sequences.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) String() string {
	return strings.Join(p, " ")
}

// OpKind is the instruction kind on the wire.
type OpKind string

const (
	OpSet    OpKind = "set"
	OpDelete OpKind = "delete"
)

// Instruction is one set/delete unit targeting a Path. A Set with an empty
// Value creates a presence node; a Set with a Value assigns a scalar. Delete
// removes the subtree rooted at Path.
type Instruction struct {
	Op    OpKind
	Path  Path
	Value string
}

// wireInstruction is the device's JSON shape. The device expects a scalar
// value as the trailing path token, not as a separate field.
type wireInstruction struct {
	Op   string   `json:"op"`
	Path []string `json:"path"`
}

// MarshalJSON encodes the instruction in the device's convention.
func (in Instruction) MarshalJSON() ([]byte, error) {
	p := in.Path
	if in.Op == OpSet && in.Value != "" {
		p = append(in.Path.Clone(), in.Value)
	}
	return json.Marshal(wireInstruction{Op: string(in.Op), Path: p})
}

// String renders the instruction as the equivalent VyOS CLI line,
// e.g. `set firewall group address-group LAN address '10.0.0.1'`.
// Used for dry-run previews and audit output.
func (in Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(string(in.Op))
	sb.WriteByte(' ')
	sb.WriteString(in.Path.String())
	if in.Op == OpSet && in.Value != "" {
		sb.WriteString(" '")
		sb.WriteString(in.Value)
		sb.WriteByte('\'')
	}
	return sb.String()
}

// MarshalInstructions encodes an ordered instruction list as the JSON array
// submitted to the device's configure endpoint.
func MarshalInstructions(ins []Instruction) ([]byte, error) {
	if ins == nil {
		ins = []Instruction{}
	}
	return json.Marshal(ins)
}
