package vyos

import (
	"encoding/json"
	"testing"
)

func TestPathEqual(t *testing.T) {
	a := Path{"firewall", "group", "address-group", "LAN"}
	b := Path{"firewall", "group", "address-group", "LAN"}
	c := Path{"firewall", "group", "address-group", "WAN"}

	if !a.Equal(b) {
		t.Error("identical token sequences must be equal")
	}
	if a.Equal(c) {
		t.Error("different token sequences must not be equal")
	}
	if a.Equal(a[:3]) {
		t.Error("prefix must not equal full path")
	}
}

func TestPathClone(t *testing.T) {
	a := Path{"nat", "source"}
	b := a.Clone()
	b[0] = "changed"
	if a[0] != "nat" {
		t.Error("Clone must be independent of the original")
	}
	if Path(nil).Clone() != nil {
		t.Error("Clone of nil path must be nil")
	}
}

func TestInstructionMarshal_ValueAsTrailingToken(t *testing.T) {
	in := Instruction{
		Op:    OpSet,
		Path:  Path{"service", "dhcp-server", "shared-network-name", "LAN"},
		Value: "10.0.0.1",
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"op":"set","path":["service","dhcp-server","shared-network-name","LAN","10.0.0.1"]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	// the instruction's own path must not grow
	if len(in.Path) != 4 {
		t.Errorf("marshal mutated the path: %v", in.Path)
	}
}

func TestInstructionMarshal_PresenceNode(t *testing.T) {
	in := Instruction{Op: OpSet, Path: Path{"firewall", "group", "domain-group", "INTERNAL"}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"op":"set","path":["firewall","group","domain-group","INTERNAL"]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestInstructionMarshal_Delete(t *testing.T) {
	// deletes never carry a value token, even if one is set
	in := Instruction{Op: OpDelete, Path: Path{"nat", "source", "rule", "10"}, Value: "stray"}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"op":"delete","path":["nat","source","rule","10"]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestInstructionString(t *testing.T) {
	in := Instruction{Op: OpSet, Path: Path{"firewall", "name", "WAN-IN", "rule", "10", "action"}, Value: "accept"}
	want := "set firewall name WAN-IN rule 10 action 'accept'"
	if got := in.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	del := Instruction{Op: OpDelete, Path: Path{"nat", "source", "rule", "10"}}
	if got := del.String(); got != "delete nat source rule 10" {
		t.Errorf("String() = %q", got)
	}
}

func TestMarshalInstructions_Empty(t *testing.T) {
	data, err := MarshalInstructions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty batch marshals to %s, want []", data)
	}
}
