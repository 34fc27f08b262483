package vyos

import "strconv"

// policySchema covers routing policy: route-maps, access lists, prefix
// lists. Large community lists are 1.5-only.
var policySchema = &Schema{
	Family: "policy",
	Root:   []string{"policy"},
	Features: map[string]Feature{
		"route-map":            {Since: V1_4, Desc: "Route maps"},
		"access-list":          {Since: V1_4, Desc: "Numbered IPv4 access lists"},
		"prefix-list":          {Since: V1_4, Desc: "IPv4 prefix lists"},
		"large-community-list": {Since: V1_5, Desc: "BGP large community lists"},
	},
	Fields: map[string]Field{
		"route-map":             {Tokens: []string{"route-map", "{name}"}},
		"route-map-description": {Tokens: []string{"route-map", "{name}", "description"}, Value: true},
		"route-map-rule":        {Tokens: []string{"route-map", "{name}", "rule", "{rule}"}},
		"route-map-rule-action": {Tokens: []string{"route-map", "{name}", "rule", "{rule}", "action"}, Value: true},
		"route-map-rule-match-prefix-list": {
			Tokens: []string{"route-map", "{name}", "rule", "{rule}", "match", "ip", "address", "prefix-list"},
			Value:  true,
		},
		"route-map-rule-match-access-list": {
			Tokens: []string{"route-map", "{name}", "rule", "{rule}", "match", "ip", "address", "access-list"},
			Value:  true,
		},
		"route-map-rule-set-local-preference": {
			Tokens: []string{"route-map", "{name}", "rule", "{rule}", "set", "local-preference"},
			Value:  true,
		},
		"route-map-rule-set-metric": {
			Tokens: []string{"route-map", "{name}", "rule", "{rule}", "set", "metric"},
			Value:  true,
		},
		"route-map-rule-set-next-hop": {
			Tokens: []string{"route-map", "{name}", "rule", "{rule}", "set", "ip-next-hop"},
			Value:  true,
		},

		"access-list":             {Tokens: []string{"access-list", "{list}"}},
		"access-list-description": {Tokens: []string{"access-list", "{list}", "description"}, Value: true},
		"access-list-rule":        {Tokens: []string{"access-list", "{list}", "rule", "{rule}"}},
		"access-list-rule-action": {Tokens: []string{"access-list", "{list}", "rule", "{rule}", "action"}, Value: true},
		"access-list-rule-source-any": {
			Tokens: []string{"access-list", "{list}", "rule", "{rule}", "source", "any"},
		},
		"access-list-rule-source-network": {
			Tokens: []string{"access-list", "{list}", "rule", "{rule}", "source", "network"},
			Value:  true,
		},
		"access-list-rule-source-inverse-mask": {
			Tokens: []string{"access-list", "{list}", "rule", "{rule}", "source", "inverse-mask"},
			Value:  true,
		},
		"access-list-rule-destination-any": {
			Tokens: []string{"access-list", "{list}", "rule", "{rule}", "destination", "any"},
		},
		"access-list-rule-destination-network": {
			Tokens: []string{"access-list", "{list}", "rule", "{rule}", "destination", "network"},
			Value:  true,
		},
		"access-list-rule-destination-inverse-mask": {
			Tokens: []string{"access-list", "{list}", "rule", "{rule}", "destination", "inverse-mask"},
			Value:  true,
		},

		"prefix-list":             {Tokens: []string{"prefix-list", "{name}"}},
		"prefix-list-description": {Tokens: []string{"prefix-list", "{name}", "description"}, Value: true},
		"prefix-list-rule":        {Tokens: []string{"prefix-list", "{name}", "rule", "{rule}"}},
		"prefix-list-rule-action": {Tokens: []string{"prefix-list", "{name}", "rule", "{rule}", "action"}, Value: true},
		"prefix-list-rule-prefix": {Tokens: []string{"prefix-list", "{name}", "rule", "{rule}", "prefix"}, Value: true},
		"prefix-list-rule-le":     {Tokens: []string{"prefix-list", "{name}", "rule", "{rule}", "le"}, Value: true},
		"prefix-list-rule-ge":     {Tokens: []string{"prefix-list", "{name}", "rule", "{rule}", "ge"}, Value: true},

		"large-community-list": {
			Tokens:  []string{"large-community-list", "{name}"},
			Feature: "large-community-list",
		},
		"large-community-list-rule-action": {
			Tokens:  []string{"large-community-list", "{name}", "rule", "{rule}", "action"},
			Feature: "large-community-list",
			Value:   true,
		},
		"large-community-list-rule-regex": {
			Tokens:  []string{"large-community-list", "{name}", "rule", "{rule}", "regex"},
			Feature: "large-community-list",
			Value:   true,
		},
	},
}

// Policy builds instruction batches for routing policy objects.
type Policy struct {
	*Batch
}

// NewPolicy creates a policy batch for a device version.
func NewPolicy(rawVersion string) *Policy {
	return &Policy{NewBatch(policySchema, rawVersion)}
}

// Policy creates a policy batch over the registry's cached mapper for
// the version.
func (r *Registry) Policy(rawVersion string) *Policy {
	return &Policy{NewBatchWithMapper(r.Mapper(policySchema, rawVersion))}
}

func mapArgs(name string, rule int) Args {
	return Args{"name": name, "rule": strconv.Itoa(rule)}
}

func listArgs(list string, rule int) Args {
	return Args{"list": list, "rule": strconv.Itoa(rule)}
}

func (p *Policy) CreateRouteMap(name string) error {
	return p.set("route-map", Args{"name": name}, "")
}

func (p *Policy) DeleteRouteMap(name string) error {
	return p.delete("route-map", Args{"name": name})
}

func (p *Policy) SetRouteMapDescription(name, desc string) error {
	return p.set("route-map-description", Args{"name": name}, desc)
}

func (p *Policy) CreateRouteMapRule(name string, rule int) error {
	return p.set("route-map-rule", mapArgs(name, rule), "")
}

func (p *Policy) DeleteRouteMapRule(name string, rule int) error {
	return p.delete("route-map-rule", mapArgs(name, rule))
}

func (p *Policy) SetRouteMapRuleAction(name string, rule int, action string) error {
	return p.set("route-map-rule-action", mapArgs(name, rule), action)
}

func (p *Policy) SetRouteMapRuleMatchPrefixList(name string, rule int, list string) error {
	return p.set("route-map-rule-match-prefix-list", mapArgs(name, rule), list)
}

func (p *Policy) SetRouteMapRuleMatchAccessList(name string, rule int, list string) error {
	return p.set("route-map-rule-match-access-list", mapArgs(name, rule), list)
}

func (p *Policy) SetRouteMapRuleLocalPreference(name string, rule int, pref string) error {
	return p.set("route-map-rule-set-local-preference", mapArgs(name, rule), pref)
}

func (p *Policy) SetRouteMapRuleMetric(name string, rule int, metric string) error {
	return p.set("route-map-rule-set-metric", mapArgs(name, rule), metric)
}

func (p *Policy) SetRouteMapRuleNextHop(name string, rule int, nextHop string) error {
	return p.set("route-map-rule-set-next-hop", mapArgs(name, rule), nextHop)
}

func (p *Policy) CreateAccessList(list string) error {
	return p.set("access-list", Args{"list": list}, "")
}

func (p *Policy) DeleteAccessList(list string) error {
	return p.delete("access-list", Args{"list": list})
}

func (p *Policy) SetAccessListDescription(list, desc string) error {
	return p.set("access-list-description", Args{"list": list}, desc)
}

func (p *Policy) SetAccessListRuleAction(list string, rule int, action string) error {
	return p.set("access-list-rule-action", listArgs(list, rule), action)
}

func (p *Policy) SetAccessListRuleSourceAny(list string, rule int) error {
	return p.set("access-list-rule-source-any", listArgs(list, rule), "")
}

// SetAccessListRuleSource expresses the source match as the device's
// network + inverse-mask node pair. One semantic call, two instructions, in
// the fixed order the device requires.
func (p *Policy) SetAccessListRuleSource(list string, rule int, network, inverseMask string) error {
	if err := p.set("access-list-rule-source-network", listArgs(list, rule), network); err != nil {
		return err
	}
	return p.set("access-list-rule-source-inverse-mask", listArgs(list, rule), inverseMask)
}

func (p *Policy) SetAccessListRuleDestinationAny(list string, rule int) error {
	return p.set("access-list-rule-destination-any", listArgs(list, rule), "")
}

func (p *Policy) SetAccessListRuleDestination(list string, rule int, network, inverseMask string) error {
	if err := p.set("access-list-rule-destination-network", listArgs(list, rule), network); err != nil {
		return err
	}
	return p.set("access-list-rule-destination-inverse-mask", listArgs(list, rule), inverseMask)
}

func (p *Policy) CreatePrefixList(name string) error {
	return p.set("prefix-list", Args{"name": name}, "")
}

func (p *Policy) DeletePrefixList(name string) error {
	return p.delete("prefix-list", Args{"name": name})
}

func (p *Policy) SetPrefixListDescription(name, desc string) error {
	return p.set("prefix-list-description", Args{"name": name}, desc)
}

func (p *Policy) SetPrefixListRuleAction(name string, rule int, action string) error {
	return p.set("prefix-list-rule-action", mapArgs(name, rule), action)
}

func (p *Policy) SetPrefixListRulePrefix(name string, rule int, prefix string) error {
	return p.set("prefix-list-rule-prefix", mapArgs(name, rule), prefix)
}

func (p *Policy) SetPrefixListRuleLe(name string, rule int, le string) error {
	return p.set("prefix-list-rule-le", mapArgs(name, rule), le)
}

func (p *Policy) SetPrefixListRuleGe(name string, rule int, ge string) error {
	return p.set("prefix-list-rule-ge", mapArgs(name, rule), ge)
}

func (p *Policy) CreateLargeCommunityList(name string) error {
	return p.set("large-community-list", Args{"name": name}, "")
}

func (p *Policy) SetLargeCommunityListRuleAction(name string, rule int, action string) error {
	return p.set("large-community-list-rule-action", mapArgs(name, rule), action)
}

func (p *Policy) SetLargeCommunityListRuleRegex(name string, rule int, regex string) error {
	return p.set("large-community-list-rule-regex", mapArgs(name, rule), regex)
}
