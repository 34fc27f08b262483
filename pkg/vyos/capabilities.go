package vyos

// Capability reports whether one sub-feature exists at a version.
type Capability struct {
	Supported   bool   `json:"supported"`
	Description string `json:"description"`
}

// CapabilityMatrix maps feature flags to support status for one
// (family, version) pair. Immutable once computed; cached inside the mapper
// for the process lifetime.
type CapabilityMatrix struct {
	Family   string                `json:"family"`
	Version  string                `json:"version"`
	Features map[string]Capability `json:"features"`
}

// Supported reports whether the named feature exists. Unknown flags report
// false.
func (c *CapabilityMatrix) Supported(flag string) bool {
	return c.Features[flag].Supported
}

func newCapabilityMatrix(s *Schema, v Version) *CapabilityMatrix {
	features := make(map[string]Capability, len(s.Features))
	for name, f := range s.Features {
		features[name] = Capability{
			Supported:   v >= f.Since,
			Description: f.Desc,
		}
	}
	return &CapabilityMatrix{
		Family:   s.Family,
		Version:  v.String(),
		Features: features,
	}
}

// Capabilities returns the capability matrix for a feature family at a raw
// version string. Pure lookup over the static schema tables; no device round
// trip.
func Capabilities(family, rawVersion string) (*CapabilityMatrix, error) {
	s, ok := FamilySchema(family)
	if !ok {
		return nil, &UnknownFamilyError{Family: family}
	}
	return newCapabilityMatrix(s, ParseVersion(rawVersion)), nil
}

// UnknownFamilyError indicates a capability query for a feature family this
// compiler does not know.
type UnknownFamilyError struct {
	Family string
}

func (e *UnknownFamilyError) Error() string {
	return "unknown feature family " + e.Family
}
