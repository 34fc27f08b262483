package vyos

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want Version
	}{
		{"1.4", V1_4},
		{"1.5", V1_5},
		{"VyOS 1.4.0-epa1", V1_4},
		{"VyOS 1.5-rolling-202408", V1_5},
		{"vyos-1.4-rolling-202310", V1_4},
		{"latest", Latest},
		{"", Latest},
		{"2.0", Latest},
		{"garbage", Latest},
	}

	for _, tt := range tests {
		if got := ParseVersion(tt.raw); got != tt.want {
			t.Errorf("ParseVersion(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	if V1_4.String() != "1.4" || V1_5.String() != "1.5" {
		t.Errorf("version strings: %s %s", V1_4, V1_5)
	}
	if Version(99).String() != "unknown" {
		t.Error("out-of-range version should stringify as unknown")
	}
}

func TestVersionsOrdered(t *testing.T) {
	vs := Versions()
	if len(vs) < 2 {
		t.Fatalf("Versions() = %v", vs)
	}
	for i := 1; i < len(vs); i++ {
		if vs[i] <= vs[i-1] {
			t.Errorf("Versions() not ascending: %v", vs)
		}
	}
	if vs[len(vs)-1] != Latest {
		t.Errorf("last version %s is not Latest %s", vs[len(vs)-1], Latest)
	}
}
