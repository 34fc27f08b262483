package vyos

import "strconv"

// natSchema covers source/destination NAT rules. 1.5 moved the
// outbound/inbound interface match under a `name` subnode and introduced
// static NAT.
var natSchema = &Schema{
	Family: "nat",
	Root:   []string{"nat"},
	Features: map[string]Feature{
		"source-nat":      {Since: V1_4, Desc: "Source NAT rules"},
		"destination-nat": {Since: V1_4, Desc: "Destination NAT rules"},
		"static-nat":      {Since: V1_5, Desc: "One-to-one static NAT rules"},
	},
	Fields: map[string]Field{
		"source-rule":             {Tokens: []string{"source", "rule", "{rule}"}},
		"source-rule-description": {Tokens: []string{"source", "rule", "{rule}", "description"}, Value: true},
		"source-rule-outbound-interface": {
			Tokens: []string{"source", "rule", "{rule}", "outbound-interface"},
			Override: map[Version][]string{
				V1_5: {"source", "rule", "{rule}", "outbound-interface", "name"},
			},
			Value: true,
		},
		"source-rule-source-address":       {Tokens: []string{"source", "rule", "{rule}", "source", "address"}, Value: true},
		"source-rule-protocol":             {Tokens: []string{"source", "rule", "{rule}", "protocol"}, Value: true},
		"source-rule-translation-address":  {Tokens: []string{"source", "rule", "{rule}", "translation", "address"}, Value: true},
		"source-rule-translation-port":     {Tokens: []string{"source", "rule", "{rule}", "translation", "port"}, Value: true},
		"source-rule-disable":              {Tokens: []string{"source", "rule", "{rule}", "disable"}},

		"destination-rule":             {Tokens: []string{"destination", "rule", "{rule}"}},
		"destination-rule-description": {Tokens: []string{"destination", "rule", "{rule}", "description"}, Value: true},
		"destination-rule-inbound-interface": {
			Tokens: []string{"destination", "rule", "{rule}", "inbound-interface"},
			Override: map[Version][]string{
				V1_5: {"destination", "rule", "{rule}", "inbound-interface", "name"},
			},
			Value: true,
		},
		"destination-rule-destination-address": {Tokens: []string{"destination", "rule", "{rule}", "destination", "address"}, Value: true},
		"destination-rule-destination-port":    {Tokens: []string{"destination", "rule", "{rule}", "destination", "port"}, Value: true},
		"destination-rule-protocol":            {Tokens: []string{"destination", "rule", "{rule}", "protocol"}, Value: true},
		"destination-rule-translation-address": {Tokens: []string{"destination", "rule", "{rule}", "translation", "address"}, Value: true},
		"destination-rule-translation-port":    {Tokens: []string{"destination", "rule", "{rule}", "translation", "port"}, Value: true},
		"destination-rule-disable":             {Tokens: []string{"destination", "rule", "{rule}", "disable"}},

		"static-rule":                     {Tokens: []string{"static", "rule", "{rule}"}, Feature: "static-nat"},
		"static-rule-inbound-interface":   {Tokens: []string{"static", "rule", "{rule}", "inbound-interface"}, Feature: "static-nat", Value: true},
		"static-rule-destination-address": {Tokens: []string{"static", "rule", "{rule}", "destination", "address"}, Feature: "static-nat", Value: true},
		"static-rule-translation-address": {Tokens: []string{"static", "rule", "{rule}", "translation", "address"}, Feature: "static-nat", Value: true},
	},
}

// NAT builds instruction batches for NAT rules.
type NAT struct {
	*Batch
}

// NewNAT creates a NAT batch for a device version.
func NewNAT(rawVersion string) *NAT {
	return &NAT{NewBatch(natSchema, rawVersion)}
}

// NAT creates a NAT batch over the registry's cached mapper for the version.
func (r *Registry) NAT(rawVersion string) *NAT {
	return &NAT{NewBatchWithMapper(r.Mapper(natSchema, rawVersion))}
}

func natArgs(rule int) Args {
	return Args{"rule": strconv.Itoa(rule)}
}

func (n *NAT) CreateSourceRule(rule int) error {
	return n.set("source-rule", natArgs(rule), "")
}

func (n *NAT) DeleteSourceRule(rule int) error {
	return n.delete("source-rule", natArgs(rule))
}

func (n *NAT) SetSourceRuleDescription(rule int, desc string) error {
	return n.set("source-rule-description", natArgs(rule), desc)
}

func (n *NAT) SetSourceRuleOutboundInterface(rule int, iface string) error {
	return n.set("source-rule-outbound-interface", natArgs(rule), iface)
}

func (n *NAT) SetSourceRuleSourceAddress(rule int, addr string) error {
	return n.set("source-rule-source-address", natArgs(rule), addr)
}

func (n *NAT) SetSourceRuleProtocol(rule int, proto string) error {
	return n.set("source-rule-protocol", natArgs(rule), proto)
}

// SetSourceRuleTranslationAddress assigns the translated address; the value
// "masquerade" selects the outbound interface address.
func (n *NAT) SetSourceRuleTranslationAddress(rule int, addr string) error {
	return n.set("source-rule-translation-address", natArgs(rule), addr)
}

func (n *NAT) SetSourceRuleTranslationPort(rule int, port string) error {
	return n.set("source-rule-translation-port", natArgs(rule), port)
}

// ClearSourceRuleTranslation removes the specific translation leaves.
// Deliberately does not delete the whole `translation` subtree, so a sibling
// leaf set by an unrelated operation in the same batch survives.
func (n *NAT) ClearSourceRuleTranslation(rule int) error {
	if err := n.delete("source-rule-translation-address", natArgs(rule)); err != nil {
		return err
	}
	return n.delete("source-rule-translation-port", natArgs(rule))
}

func (n *NAT) DisableSourceRule(rule int) error {
	return n.set("source-rule-disable", natArgs(rule), "")
}

func (n *NAT) EnableSourceRule(rule int) error {
	return n.delete("source-rule-disable", natArgs(rule))
}

func (n *NAT) CreateDestinationRule(rule int) error {
	return n.set("destination-rule", natArgs(rule), "")
}

func (n *NAT) DeleteDestinationRule(rule int) error {
	return n.delete("destination-rule", natArgs(rule))
}

func (n *NAT) SetDestinationRuleDescription(rule int, desc string) error {
	return n.set("destination-rule-description", natArgs(rule), desc)
}

func (n *NAT) SetDestinationRuleInboundInterface(rule int, iface string) error {
	return n.set("destination-rule-inbound-interface", natArgs(rule), iface)
}

func (n *NAT) SetDestinationRuleDestinationAddress(rule int, addr string) error {
	return n.set("destination-rule-destination-address", natArgs(rule), addr)
}

func (n *NAT) SetDestinationRuleDestinationPort(rule int, port string) error {
	return n.set("destination-rule-destination-port", natArgs(rule), port)
}

func (n *NAT) SetDestinationRuleProtocol(rule int, proto string) error {
	return n.set("destination-rule-protocol", natArgs(rule), proto)
}

func (n *NAT) SetDestinationRuleTranslationAddress(rule int, addr string) error {
	return n.set("destination-rule-translation-address", natArgs(rule), addr)
}

func (n *NAT) SetDestinationRuleTranslationPort(rule int, port string) error {
	return n.set("destination-rule-translation-port", natArgs(rule), port)
}

func (n *NAT) DisableDestinationRule(rule int) error {
	return n.set("destination-rule-disable", natArgs(rule), "")
}

func (n *NAT) CreateStaticRule(rule int) error {
	return n.set("static-rule", natArgs(rule), "")
}

func (n *NAT) DeleteStaticRule(rule int) error {
	return n.delete("static-rule", natArgs(rule))
}

func (n *NAT) SetStaticRuleInboundInterface(rule int, iface string) error {
	return n.set("static-rule-inbound-interface", natArgs(rule), iface)
}

func (n *NAT) SetStaticRuleDestinationAddress(rule int, addr string) error {
	return n.set("static-rule-destination-address", natArgs(rule), addr)
}

func (n *NAT) SetStaticRuleTranslationAddress(rule int, addr string) error {
	return n.set("static-rule-translation-address", natArgs(rule), addr)
}
