package vyos

import (
	"strconv"

	"github.com/vygate-network/vygate/pkg/util"
)

// firewallGroupSchema covers `firewall group`. Domain and interface groups
// only exist from 1.5.
var firewallGroupSchema = &Schema{
	Family: "firewall-group",
	Root:   []string{"firewall", "group"},
	Features: map[string]Feature{
		"address-group":   {Since: V1_4, Desc: "IPv4 address groups"},
		"network-group":   {Since: V1_4, Desc: "IPv4 network (CIDR) groups"},
		"port-group":      {Since: V1_4, Desc: "TCP/UDP port groups"},
		"mac-group":       {Since: V1_4, Desc: "MAC address groups"},
		"domain-group":    {Since: V1_5, Desc: "FQDN-based groups"},
		"interface-group": {Since: V1_5, Desc: "Interface name groups"},
	},
	Fields: map[string]Field{
		"address-group":             {Tokens: []string{"address-group", "{name}"}, Feature: "address-group"},
		"address-group-member":      {Tokens: []string{"address-group", "{name}", "address"}, Feature: "address-group", Value: true},
		"address-group-description": {Tokens: []string{"address-group", "{name}", "description"}, Feature: "address-group", Value: true},

		"network-group":             {Tokens: []string{"network-group", "{name}"}, Feature: "network-group"},
		"network-group-member":      {Tokens: []string{"network-group", "{name}", "network"}, Feature: "network-group", Value: true},
		"network-group-description": {Tokens: []string{"network-group", "{name}", "description"}, Feature: "network-group", Value: true},

		"port-group":             {Tokens: []string{"port-group", "{name}"}, Feature: "port-group"},
		"port-group-member":      {Tokens: []string{"port-group", "{name}", "port"}, Feature: "port-group", Value: true},
		"port-group-description": {Tokens: []string{"port-group", "{name}", "description"}, Feature: "port-group", Value: true},

		"mac-group":        {Tokens: []string{"mac-group", "{name}"}, Feature: "mac-group"},
		"mac-group-member": {Tokens: []string{"mac-group", "{name}", "mac-address"}, Feature: "mac-group", Value: true},

		"domain-group":        {Tokens: []string{"domain-group", "{name}"}, Feature: "domain-group"},
		"domain-group-member": {Tokens: []string{"domain-group", "{name}", "address"}, Feature: "domain-group", Value: true},

		"interface-group":        {Tokens: []string{"interface-group", "{name}"}, Feature: "interface-group"},
		"interface-group-member": {Tokens: []string{"interface-group", "{name}", "interface"}, Feature: "interface-group", Value: true},
	},
}

// firewallRuleSchema covers named rule sets. 1.5 renamed the root from
// `firewall name` to `firewall ipv4 name`; the jump action is 1.5-only.
var firewallRuleSchema = &Schema{
	Family: "firewall-rule",
	Root:   []string{"firewall", "name"},
	RootOverride: map[Version][]string{
		V1_5: {"firewall", "ipv4", "name"},
	},
	Features: map[string]Feature{
		"rule-sets":   {Since: V1_4, Desc: "Named IPv4 rule sets"},
		"jump-action": {Since: V1_5, Desc: "Jump to another rule set as rule action"},
	},
	Fields: map[string]Field{
		"rule-set":                {Tokens: []string{"{name}"}},
		"rule-set-default-action": {Tokens: []string{"{name}", "default-action"}, Value: true},
		"rule-set-description":    {Tokens: []string{"{name}", "description"}, Value: true},

		"rule":                     {Tokens: []string{"{name}", "rule", "{rule}"}},
		"rule-action":              {Tokens: []string{"{name}", "rule", "{rule}", "action"}, Value: true},
		"rule-description":         {Tokens: []string{"{name}", "rule", "{rule}", "description"}, Value: true},
		"rule-protocol":            {Tokens: []string{"{name}", "rule", "{rule}", "protocol"}, Value: true},
		"rule-disable":             {Tokens: []string{"{name}", "rule", "{rule}", "disable"}},
		"rule-log":                 {Tokens: []string{"{name}", "rule", "{rule}", "log"}},
		"rule-source-address":      {Tokens: []string{"{name}", "rule", "{rule}", "source", "address"}, Value: true},
		"rule-source-port":         {Tokens: []string{"{name}", "rule", "{rule}", "source", "port"}, Value: true},
		"rule-destination-address": {Tokens: []string{"{name}", "rule", "{rule}", "destination", "address"}, Value: true},
		"rule-destination-port":    {Tokens: []string{"{name}", "rule", "{rule}", "destination", "port"}, Value: true},
		"rule-source-group":        {Tokens: []string{"{name}", "rule", "{rule}", "source", "group", "{kind}"}, Value: true},
		"rule-destination-group":   {Tokens: []string{"{name}", "rule", "{rule}", "destination", "group", "{kind}"}, Value: true},
		"rule-jump-target":         {Tokens: []string{"{name}", "rule", "{rule}", "jump-target"}, Feature: "jump-action", Value: true},
	},
}

// FirewallGroups builds instruction batches for firewall groups.
type FirewallGroups struct {
	*Batch
}

// NewFirewallGroups creates a firewall-group batch for a device version.
func NewFirewallGroups(rawVersion string) *FirewallGroups {
	return &FirewallGroups{NewBatch(firewallGroupSchema, rawVersion)}
}

// FirewallGroups creates a firewall-group batch over the registry's
// cached mapper for the version.
func (r *Registry) FirewallGroups(rawVersion string) *FirewallGroups {
	return &FirewallGroups{NewBatchWithMapper(r.Mapper(firewallGroupSchema, rawVersion))}
}

func (f *FirewallGroups) CreateAddressGroup(name string) error {
	return f.set("address-group", Args{"name": name}, "")
}

func (f *FirewallGroups) DeleteAddressGroup(name string) error {
	return f.delete("address-group", Args{"name": name})
}

func (f *FirewallGroups) AddAddressGroupMember(name, address string) error {
	return f.set("address-group-member", Args{"name": name}, address)
}

func (f *FirewallGroups) RemoveAddressGroupMember(name, address string) error {
	if address == "" {
		return util.Validationf("address-group-member: value required")
	}
	p, err := f.mapper.Resolve("address-group-member", Args{"name": name})
	if err != nil {
		return err
	}
	// member deletes target the specific value, not the whole address node
	if !p.IsEmpty() {
		f.AddDelete(append(p, address))
	}
	return nil
}

func (f *FirewallGroups) SetAddressGroupDescription(name, desc string) error {
	return f.set("address-group-description", Args{"name": name}, desc)
}

func (f *FirewallGroups) CreateNetworkGroup(name string) error {
	return f.set("network-group", Args{"name": name}, "")
}

func (f *FirewallGroups) DeleteNetworkGroup(name string) error {
	return f.delete("network-group", Args{"name": name})
}

func (f *FirewallGroups) AddNetworkGroupMember(name, cidr string) error {
	return f.set("network-group-member", Args{"name": name}, cidr)
}

func (f *FirewallGroups) SetNetworkGroupDescription(name, desc string) error {
	return f.set("network-group-description", Args{"name": name}, desc)
}

func (f *FirewallGroups) CreatePortGroup(name string) error {
	return f.set("port-group", Args{"name": name}, "")
}

func (f *FirewallGroups) DeletePortGroup(name string) error {
	return f.delete("port-group", Args{"name": name})
}

func (f *FirewallGroups) AddPortGroupMember(name, port string) error {
	return f.set("port-group-member", Args{"name": name}, port)
}

func (f *FirewallGroups) SetPortGroupDescription(name, desc string) error {
	return f.set("port-group-description", Args{"name": name}, desc)
}

func (f *FirewallGroups) CreateMacGroup(name string) error {
	return f.set("mac-group", Args{"name": name}, "")
}

func (f *FirewallGroups) DeleteMacGroup(name string) error {
	return f.delete("mac-group", Args{"name": name})
}

func (f *FirewallGroups) AddMacGroupMember(name, mac string) error {
	return f.set("mac-group-member", Args{"name": name}, mac)
}

func (f *FirewallGroups) CreateDomainGroup(name string) error {
	return f.set("domain-group", Args{"name": name}, "")
}

func (f *FirewallGroups) DeleteDomainGroup(name string) error {
	return f.delete("domain-group", Args{"name": name})
}

func (f *FirewallGroups) AddDomainGroupMember(name, fqdn string) error {
	return f.set("domain-group-member", Args{"name": name}, fqdn)
}

func (f *FirewallGroups) CreateInterfaceGroup(name string) error {
	return f.set("interface-group", Args{"name": name}, "")
}

func (f *FirewallGroups) DeleteInterfaceGroup(name string) error {
	return f.delete("interface-group", Args{"name": name})
}

func (f *FirewallGroups) AddInterfaceGroupMember(name, iface string) error {
	return f.set("interface-group-member", Args{"name": name}, iface)
}

// FirewallRules builds instruction batches for named firewall rule sets.
type FirewallRules struct {
	*Batch
}

// NewFirewallRules creates a firewall-rule batch for a device version.
func NewFirewallRules(rawVersion string) *FirewallRules {
	return &FirewallRules{NewBatch(firewallRuleSchema, rawVersion)}
}

// FirewallRules creates a firewall-rule batch over the registry's
// cached mapper for the version.
func (r *Registry) FirewallRules(rawVersion string) *FirewallRules {
	return &FirewallRules{NewBatchWithMapper(r.Mapper(firewallRuleSchema, rawVersion))}
}

func ruleArgs(name string, rule int) Args {
	return Args{"name": name, "rule": strconv.Itoa(rule)}
}

func (f *FirewallRules) CreateRuleSet(name string) error {
	return f.set("rule-set", Args{"name": name}, "")
}

func (f *FirewallRules) DeleteRuleSet(name string) error {
	return f.delete("rule-set", Args{"name": name})
}

func (f *FirewallRules) SetDefaultAction(name, action string) error {
	return f.set("rule-set-default-action", Args{"name": name}, action)
}

func (f *FirewallRules) SetRuleSetDescription(name, desc string) error {
	return f.set("rule-set-description", Args{"name": name}, desc)
}

func (f *FirewallRules) CreateRule(name string, rule int) error {
	return f.set("rule", ruleArgs(name, rule), "")
}

func (f *FirewallRules) DeleteRule(name string, rule int) error {
	return f.delete("rule", ruleArgs(name, rule))
}

func (f *FirewallRules) SetRuleAction(name string, rule int, action string) error {
	return f.set("rule-action", ruleArgs(name, rule), action)
}

func (f *FirewallRules) SetRuleDescription(name string, rule int, desc string) error {
	return f.set("rule-description", ruleArgs(name, rule), desc)
}

func (f *FirewallRules) SetRuleProtocol(name string, rule int, proto string) error {
	return f.set("rule-protocol", ruleArgs(name, rule), proto)
}

func (f *FirewallRules) DisableRule(name string, rule int) error {
	return f.set("rule-disable", ruleArgs(name, rule), "")
}

func (f *FirewallRules) EnableRule(name string, rule int) error {
	return f.delete("rule-disable", ruleArgs(name, rule))
}

func (f *FirewallRules) EnableRuleLog(name string, rule int) error {
	return f.set("rule-log", ruleArgs(name, rule), "")
}

func (f *FirewallRules) SetRuleSourceAddress(name string, rule int, addr string) error {
	return f.set("rule-source-address", ruleArgs(name, rule), addr)
}

func (f *FirewallRules) SetRuleSourcePort(name string, rule int, port string) error {
	return f.set("rule-source-port", ruleArgs(name, rule), port)
}

func (f *FirewallRules) SetRuleDestinationAddress(name string, rule int, addr string) error {
	return f.set("rule-destination-address", ruleArgs(name, rule), addr)
}

func (f *FirewallRules) SetRuleDestinationPort(name string, rule int, port string) error {
	return f.set("rule-destination-port", ruleArgs(name, rule), port)
}

// SetRuleSourceGroup matches the rule source against a named group.
// kind is the group kind token, e.g. "address-group" or "port-group".
func (f *FirewallRules) SetRuleSourceGroup(name string, rule int, kind, group string) error {
	args := ruleArgs(name, rule)
	args["kind"] = kind
	return f.set("rule-source-group", args, group)
}

func (f *FirewallRules) SetRuleDestinationGroup(name string, rule int, kind, group string) error {
	args := ruleArgs(name, rule)
	args["kind"] = kind
	return f.set("rule-destination-group", args, group)
}

func (f *FirewallRules) SetRuleJumpTarget(name string, rule int, target string) error {
	return f.set("rule-jump-target", ruleArgs(name, rule), target)
}

// RuleMove renumbers one rule within a rule set.
type RuleMove struct {
	Old int
	New int
}

// RenumberRules deletes every old rule number before creating any new one.
// Old and new numberings may collide and the device applies instructions
// strictly in order, so deletes must all precede creates.
func (f *FirewallRules) RenumberRules(name string, moves []RuleMove) error {
	for _, m := range moves {
		if err := f.DeleteRule(name, m.Old); err != nil {
			return err
		}
	}
	for _, m := range moves {
		if err := f.CreateRule(name, m.New); err != nil {
			return err
		}
	}
	return nil
}
