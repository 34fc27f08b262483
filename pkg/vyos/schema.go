package vyos

import (
	"sort"
	"strings"
	"sync"

	"github.com/vygate-network/vygate/pkg/util"
)

// Field declares one semantic operation's path template. Template tokens
// wrapped in braces ("{name}", "{rule}") are substituted from the caller's
// arguments at resolve time; all other tokens are literals.
type Field struct {
	// Tokens is the template relative to the family root.
	Tokens []string
	// Override replaces Tokens entirely for specific versions.
	Override map[Version][]string
	// Absent marks versions where the field simply does not exist. Resolving
	// returns an empty Path and callers skip the append (no instruction).
	Absent map[Version]bool
	// Feature gates the field on a capability. Resolving on a version
	// without the feature is a CapabilityError, not a silent skip.
	Feature string
	// Value marks operations that assign a scalar; the builder requires a
	// non-empty value for these.
	Value bool
}

// Feature describes a capability gate for introspection and enforcement.
type Feature struct {
	Since Version
	Desc  string
}

// Schema is one feature family's declarative command grammar.
type Schema struct {
	Family string
	// Root is prepended to every field template. RootOverride swaps the
	// root for specific versions (e.g. the 1.5 "firewall ipv4" rename).
	Root         []string
	RootOverride map[Version][]string
	Features     map[string]Feature
	Fields       map[string]Field
}

// Args carries template substitutions for a resolve call.
type Args map[string]string

// resolvedField is a Field flattened for one version.
type resolvedField struct {
	tokens   []string
	absent   bool
	gated    string // unsupported feature name, "" if supported
	hasValue bool
}

// Mapper resolves operation names to Paths for one (family, version) pair.
// Construction merges version overrides over the base table once; the result
// is immutable and safe to share across concurrent callers.
type Mapper struct {
	family  string
	version Version
	fields  map[string]resolvedField
	caps    *CapabilityMatrix
}

// NewMapper flattens the schema for the version resolved from rawVersion.
func NewMapper(s *Schema, rawVersion string) *Mapper {
	v := ParseVersion(rawVersion)

	root := s.Root
	if o, ok := s.RootOverride[v]; ok {
		root = o
	}

	fields := make(map[string]resolvedField, len(s.Fields))
	for name, f := range s.Fields {
		rf := resolvedField{hasValue: f.Value}

		if f.Feature != "" {
			feat, ok := s.Features[f.Feature]
			if !ok || v < feat.Since {
				rf.gated = f.Feature
			}
		}
		if f.Absent[v] {
			rf.absent = true
		}

		tokens := f.Tokens
		if o, ok := f.Override[v]; ok {
			tokens = o
		}
		rf.tokens = make([]string, 0, len(root)+len(tokens))
		rf.tokens = append(rf.tokens, root...)
		rf.tokens = append(rf.tokens, tokens...)

		fields[name] = rf
	}

	return &Mapper{
		family:  s.Family,
		version: v,
		fields:  fields,
		caps:    newCapabilityMatrix(s, v),
	}
}

// Family returns the feature family name.
func (m *Mapper) Family() string { return m.family }

// Version returns the resolved firmware generation.
func (m *Mapper) Version() Version { return m.version }

// Capabilities returns the per-version capability matrix.
func (m *Mapper) Capabilities() *CapabilityMatrix { return m.caps }

// Resolve maps an operation name and arguments to a Path. Deterministic:
// identical inputs always yield an identical Path.
//
// Outcomes:
//   - (path, nil): normal resolution
//   - (nil, nil): field absent at this version; callers skip the append
//   - UnknownOperationError: no such operation in this family
//   - CapabilityError: the feature does not exist at this version at all
//   - ValidationError: a template argument is missing or empty
func (m *Mapper) Resolve(op string, args Args) (Path, error) {
	f, ok := m.fields[op]
	if !ok {
		return nil, &util.UnknownOperationError{Family: m.family, Operation: op}
	}
	if f.gated != "" {
		return nil, &util.CapabilityError{
			Family:  m.family,
			Feature: f.gated,
			Version: m.version.String(),
		}
	}
	if f.absent {
		return nil, nil
	}

	path := make(Path, 0, len(f.tokens))
	for _, tok := range f.tokens {
		if strings.HasPrefix(tok, "{") && strings.HasSuffix(tok, "}") {
			name := tok[1 : len(tok)-1]
			v, ok := args[name]
			if !ok || v == "" {
				return nil, util.Validationf("%s: missing %s", op, name)
			}
			path = append(path, v)
			continue
		}
		path = append(path, tok)
	}
	return path, nil
}

// needsValue reports whether op assigns a scalar. Unknown ops report false;
// Resolve is the authority on unknown operations.
func (m *Mapper) needsValue(op string) bool {
	return m.fields[op].hasValue
}

// Operations returns the family's operation names, sorted. Introspection
// surface for tooling and tests.
func (m *Mapper) Operations() []string {
	ops := make([]string, 0, len(m.fields))
	for name := range m.fields {
		ops = append(ops, name)
	}
	sort.Strings(ops)
	return ops
}

// Registry caches resolved mappers per (family, version). Explicit state
// rather than a package global so tests and embedders construct isolated
// instances.
type Registry struct {
	mu      sync.Mutex
	mappers map[registryKey]*Mapper
}

type registryKey struct {
	family  string
	version Version
}

// NewRegistry creates an empty mapper registry.
func NewRegistry() *Registry {
	return &Registry{mappers: make(map[registryKey]*Mapper)}
}

// Mapper returns the cached mapper for (schema, version), building it on
// first use.
func (r *Registry) Mapper(s *Schema, rawVersion string) *Mapper {
	key := registryKey{family: s.Family, version: ParseVersion(rawVersion)}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.mappers[key]; ok {
		return m
	}
	m := NewMapper(s, rawVersion)
	r.mappers[key] = m
	return m
}

// FamilySchema looks up a feature family's schema by name.
func FamilySchema(family string) (*Schema, bool) {
	for _, s := range familySchemas {
		if s.Family == family {
			return s, true
		}
	}
	return nil, false
}

// Families returns all feature family names, sorted.
func Families() []string {
	names := make([]string, 0, len(familySchemas))
	for _, s := range familySchemas {
		names = append(names, s.Family)
	}
	sort.Strings(names)
	return names
}

// familySchemas lists every feature family's grammar. The tables themselves
// live alongside their typed builders (firewall.go, nat.go, dhcp.go,
// policy.go). Immutable after init.
var familySchemas = []*Schema{
	firewallGroupSchema,
	firewallRuleSchema,
	natSchema,
	dhcpSchema,
	policySchema,
}
