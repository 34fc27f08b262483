package vyos

import "strings"

// Version identifies a VyOS firmware generation. The path grammar differs
// between generations (renamed keywords, new required fields, new
// sub-features), so every mapper lookup is version-resolved.
type Version int

const (
	V1_4 Version = iota
	V1_5
)

// Latest is the newest known firmware generation. Unrecognized raw version
// strings resolve here by convention.
const Latest = V1_5

func (v Version) String() string {
	switch v {
	case V1_4:
		return "1.4"
	case V1_5:
		return "1.5"
	}
	return "unknown"
}

// Versions returns all known firmware generations, oldest first.
func Versions() []Version {
	return []Version{V1_4, V1_5}
}

// ParseVersion normalizes a raw version string ("1.4", "VyOS 1.5.0-rc1",
// "latest", an image name) to a Version. Matching is by substring against
// the known tags; anything unrecognized, including the literal "latest",
// resolves to the newest generation. Unknown versions never fail here —
// only specific absent features fail, at resolve time.
func ParseVersion(raw string) Version {
	for _, v := range []Version{V1_4, V1_5} {
		if strings.Contains(raw, v.String()) {
			return v
		}
	}
	return Latest
}
