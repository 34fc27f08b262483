package vyos

import (
	"errors"
	"testing"

	"github.com/vygate-network/vygate/pkg/util"
)

func TestRouteMap_Rule(t *testing.T) {
	p := NewPolicy("1.4")
	if err := p.CreateRouteMap("RM-EXPORT"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetRouteMapRuleAction("RM-EXPORT", 10, "permit"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetRouteMapRuleMatchPrefixList("RM-EXPORT", 10, "PL-LAN"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetRouteMapRuleLocalPreference("RM-EXPORT", 10, "200"); err != nil {
		t.Fatal(err)
	}

	ops := p.Operations()
	if len(ops) != 4 {
		t.Fatalf("Len = %d", len(ops))
	}
	assertInstruction(t, ops[1], OpSet,
		Path{"policy", "route-map", "RM-EXPORT", "rule", "10", "action"}, "permit")
	assertInstruction(t, ops[2], OpSet,
		Path{"policy", "route-map", "RM-EXPORT", "rule", "10", "match", "ip", "address", "prefix-list"}, "PL-LAN")
	assertInstruction(t, ops[3], OpSet,
		Path{"policy", "route-map", "RM-EXPORT", "rule", "10", "set", "local-preference"}, "200")
}

func TestAccessList_CompoundSourcePair(t *testing.T) {
	p := NewPolicy("1.5")
	if err := p.SetAccessListRuleSource("100", 5, "10.0.0.0", "0.0.0.255"); err != nil {
		t.Fatal(err)
	}

	ops := p.Operations()
	if len(ops) != 2 {
		t.Fatalf("one semantic call must yield the network+inverse-mask pair, got %d", len(ops))
	}
	// fixed device order: network first, then inverse-mask
	assertInstruction(t, ops[0], OpSet,
		Path{"policy", "access-list", "100", "rule", "5", "source", "network"}, "10.0.0.0")
	assertInstruction(t, ops[1], OpSet,
		Path{"policy", "access-list", "100", "rule", "5", "source", "inverse-mask"}, "0.0.0.255")
}

func TestAccessList_SourceAny(t *testing.T) {
	p := NewPolicy("1.4")
	if err := p.SetAccessListRuleSourceAny("100", 5); err != nil {
		t.Fatal(err)
	}
	assertInstruction(t, p.Operations()[0], OpSet,
		Path{"policy", "access-list", "100", "rule", "5", "source", "any"}, "")
}

func TestPrefixList(t *testing.T) {
	p := NewPolicy("1.4")
	if err := p.CreatePrefixList("PL-LAN"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPrefixListRuleAction("PL-LAN", 10, "permit"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPrefixListRulePrefix("PL-LAN", 10, "10.0.0.0/8"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPrefixListRuleLe("PL-LAN", 10, "24"); err != nil {
		t.Fatal(err)
	}

	ops := p.Operations()
	assertInstruction(t, ops[2], OpSet,
		Path{"policy", "prefix-list", "PL-LAN", "rule", "10", "prefix"}, "10.0.0.0/8")
	assertInstruction(t, ops[3], OpSet,
		Path{"policy", "prefix-list", "PL-LAN", "rule", "10", "le"}, "24")
}

func TestLargeCommunityList_GatedOn14(t *testing.T) {
	p := NewPolicy("1.4")
	if err := p.CreateLargeCommunityList("LC-1"); !errors.Is(err, util.ErrNotSupported) {
		t.Fatalf("got %v, want capability error", err)
	}
	if !p.IsEmpty() {
		t.Error("no instruction on capability error")
	}

	p = NewPolicy("1.5")
	if err := p.SetLargeCommunityListRuleRegex("LC-1", 10, "64496:1:.*"); err != nil {
		t.Fatal(err)
	}
	assertInstruction(t, p.Operations()[0], OpSet,
		Path{"policy", "large-community-list", "LC-1", "rule", "10", "regex"}, "64496:1:.*")
}
