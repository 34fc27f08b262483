package vyos

import (
	"errors"
	"testing"

	"github.com/vygate-network/vygate/pkg/util"
)

func TestSourceNAT_Masquerade(t *testing.T) {
	n := NewNAT("1.4")
	if err := n.CreateSourceRule(100); err != nil {
		t.Fatal(err)
	}
	if err := n.SetSourceRuleOutboundInterface(100, "eth0"); err != nil {
		t.Fatal(err)
	}
	if err := n.SetSourceRuleSourceAddress(100, "10.0.0.0/24"); err != nil {
		t.Fatal(err)
	}
	if err := n.SetSourceRuleTranslationAddress(100, "masquerade"); err != nil {
		t.Fatal(err)
	}

	ops := n.Operations()
	if len(ops) != 4 {
		t.Fatalf("Len = %d", len(ops))
	}
	assertInstruction(t, ops[1], OpSet, Path{"nat", "source", "rule", "100", "outbound-interface"}, "eth0")
	assertInstruction(t, ops[3], OpSet, Path{"nat", "source", "rule", "100", "translation", "address"}, "masquerade")
}

func TestSourceNAT_InterfaceNameNodeOn15(t *testing.T) {
	n := NewNAT("1.5")
	if err := n.SetSourceRuleOutboundInterface(100, "eth0"); err != nil {
		t.Fatal(err)
	}
	assertInstruction(t, n.Operations()[0], OpSet,
		Path{"nat", "source", "rule", "100", "outbound-interface", "name"}, "eth0")
}

func TestDestinationNAT_PortForward(t *testing.T) {
	n := NewNAT("1.5")
	if err := n.CreateDestinationRule(10); err != nil {
		t.Fatal(err)
	}
	if err := n.SetDestinationRuleInboundInterface(10, "eth0"); err != nil {
		t.Fatal(err)
	}
	if err := n.SetDestinationRuleProtocol(10, "tcp"); err != nil {
		t.Fatal(err)
	}
	if err := n.SetDestinationRuleDestinationPort(10, "8080"); err != nil {
		t.Fatal(err)
	}
	if err := n.SetDestinationRuleTranslationAddress(10, "192.168.0.5"); err != nil {
		t.Fatal(err)
	}
	if err := n.SetDestinationRuleTranslationPort(10, "80"); err != nil {
		t.Fatal(err)
	}

	ops := n.Operations()
	if len(ops) != 6 {
		t.Fatalf("Len = %d", len(ops))
	}
	assertInstruction(t, ops[1], OpSet,
		Path{"nat", "destination", "rule", "10", "inbound-interface", "name"}, "eth0")
	assertInstruction(t, ops[5], OpSet,
		Path{"nat", "destination", "rule", "10", "translation", "port"}, "80")
}

func TestStaticNAT_GatedOn14(t *testing.T) {
	n := NewNAT("1.4")
	err := n.CreateStaticRule(10)
	if !errors.Is(err, util.ErrNotSupported) {
		t.Fatalf("static NAT on 1.4: got %v, want capability error", err)
	}
	if !n.IsEmpty() {
		t.Error("no instruction may be appended on capability error")
	}

	n = NewNAT("1.5")
	if err := n.CreateStaticRule(10); err != nil {
		t.Fatal(err)
	}
	if err := n.SetStaticRuleTranslationAddress(10, "192.168.1.10"); err != nil {
		t.Fatal(err)
	}
	assertInstruction(t, n.Operations()[1], OpSet,
		Path{"nat", "static", "rule", "10", "translation", "address"}, "192.168.1.10")
}

func TestClearSourceRuleTranslation_LeafDeletesOnly(t *testing.T) {
	n := NewNAT("1.5")
	if err := n.ClearSourceRuleTranslation(100); err != nil {
		t.Fatal(err)
	}

	ops := n.Operations()
	if len(ops) != 2 {
		t.Fatalf("Len = %d, want 2", len(ops))
	}
	// deletes the address and port leaves, never the translation subtree
	assertInstruction(t, ops[0], OpDelete, Path{"nat", "source", "rule", "100", "translation", "address"}, "")
	assertInstruction(t, ops[1], OpDelete, Path{"nat", "source", "rule", "100", "translation", "port"}, "")
}

func TestNAT_ValueRequired(t *testing.T) {
	n := NewNAT("1.5")
	if err := n.SetSourceRuleTranslationAddress(100, ""); !errors.Is(err, util.ErrValidationFailed) {
		t.Errorf("got %v, want validation error", err)
	}
	if !n.IsEmpty() {
		t.Error("no instruction on validation failure")
	}
}
