package vyos

// dhcpSchema covers the DHCP server. 1.5 moved scalar subnet options under
// an `option` node, renamed the static-mapping MAC leaf, and introduced the
// required subnet-id field. subnet-id is silently skipped on 1.4 (the field
// does not exist there), not a capability failure: a 1.4 subnet is still
// fully configurable without it.
var dhcpSchema = &Schema{
	Family: "dhcp",
	Root:   []string{"service", "dhcp-server", "shared-network-name"},
	Features: map[string]Feature{
		"dhcp-server": {Since: V1_4, Desc: "IPv4 DHCP server pools"},
		"subnet-id":   {Since: V1_5, Desc: "Stable per-subnet identifier for lease persistence"},
	},
	Fields: map[string]Field{
		"shared-network":             {Tokens: []string{"{network}"}},
		"shared-network-description": {Tokens: []string{"{network}", "description"}, Value: true},
		"shared-network-authoritative": {
			Tokens: []string{"{network}", "authoritative"},
			Override: map[Version][]string{
				V1_4: {"{network}", "authoritative", "enable"},
			},
		},

		"subnet": {Tokens: []string{"{network}", "subnet", "{subnet}"}},
		"subnet-id-field": {
			Tokens: []string{"{network}", "subnet", "{subnet}", "subnet-id"},
			Absent: map[Version]bool{V1_4: true},
			Value:  true,
		},
		"subnet-default-router": {
			Tokens: []string{"{network}", "subnet", "{subnet}", "default-router"},
			Override: map[Version][]string{
				V1_5: {"{network}", "subnet", "{subnet}", "option", "default-router"},
			},
			Value: true,
		},
		"subnet-name-server": {
			Tokens: []string{"{network}", "subnet", "{subnet}", "name-server"},
			Override: map[Version][]string{
				V1_5: {"{network}", "subnet", "{subnet}", "option", "name-server"},
			},
			Value: true,
		},
		"subnet-domain-name": {
			Tokens: []string{"{network}", "subnet", "{subnet}", "domain-name"},
			Override: map[Version][]string{
				V1_5: {"{network}", "subnet", "{subnet}", "option", "domain-name"},
			},
			Value: true,
		},
		"subnet-lease":       {Tokens: []string{"{network}", "subnet", "{subnet}", "lease"}, Value: true},
		"subnet-exclude":     {Tokens: []string{"{network}", "subnet", "{subnet}", "exclude"}, Value: true},
		"subnet-range":       {Tokens: []string{"{network}", "subnet", "{subnet}", "range", "{range}"}},
		"subnet-range-start": {Tokens: []string{"{network}", "subnet", "{subnet}", "range", "{range}", "start"}, Value: true},
		"subnet-range-stop":  {Tokens: []string{"{network}", "subnet", "{subnet}", "range", "{range}", "stop"}, Value: true},

		"static-mapping":    {Tokens: []string{"{network}", "subnet", "{subnet}", "static-mapping", "{host}"}},
		"static-mapping-ip": {Tokens: []string{"{network}", "subnet", "{subnet}", "static-mapping", "{host}", "ip-address"}, Value: true},
		"static-mapping-mac": {
			Tokens: []string{"{network}", "subnet", "{subnet}", "static-mapping", "{host}", "mac-address"},
			Override: map[Version][]string{
				V1_5: {"{network}", "subnet", "{subnet}", "static-mapping", "{host}", "mac"},
			},
			Value: true,
		},
	},
}

// DHCP builds instruction batches for DHCP server pools.
type DHCP struct {
	*Batch
}

// NewDHCP creates a DHCP batch for a device version.
func NewDHCP(rawVersion string) *DHCP {
	return &DHCP{NewBatch(dhcpSchema, rawVersion)}
}

// DHCP creates a DHCP batch over the registry's cached mapper for the version.
func (r *Registry) DHCP(rawVersion string) *DHCP {
	return &DHCP{NewBatchWithMapper(r.Mapper(dhcpSchema, rawVersion))}
}

func subnetArgs(network, subnet string) Args {
	return Args{"network": network, "subnet": subnet}
}

func (d *DHCP) CreateSharedNetwork(network string) error {
	return d.set("shared-network", Args{"network": network}, "")
}

func (d *DHCP) DeleteSharedNetwork(network string) error {
	return d.delete("shared-network", Args{"network": network})
}

func (d *DHCP) SetSharedNetworkDescription(network, desc string) error {
	return d.set("shared-network-description", Args{"network": network}, desc)
}

func (d *DHCP) SetAuthoritative(network string) error {
	return d.set("shared-network-authoritative", Args{"network": network}, "")
}

func (d *DHCP) CreateSubnet(network, subnet string) error {
	return d.set("subnet", subnetArgs(network, subnet), "")
}

func (d *DHCP) DeleteSubnet(network, subnet string) error {
	return d.delete("subnet", subnetArgs(network, subnet))
}

// SetSubnetID assigns the 1.5 subnet identifier. On 1.4 the field does not
// exist and the call is a silent no-op.
func (d *DHCP) SetSubnetID(network, subnet, id string) error {
	return d.set("subnet-id-field", subnetArgs(network, subnet), id)
}

func (d *DHCP) SetDefaultRouter(network, subnet, router string) error {
	return d.set("subnet-default-router", subnetArgs(network, subnet), router)
}

func (d *DHCP) AddNameServer(network, subnet, server string) error {
	return d.set("subnet-name-server", subnetArgs(network, subnet), server)
}

func (d *DHCP) SetDomainName(network, subnet, domain string) error {
	return d.set("subnet-domain-name", subnetArgs(network, subnet), domain)
}

func (d *DHCP) SetLease(network, subnet, seconds string) error {
	return d.set("subnet-lease", subnetArgs(network, subnet), seconds)
}

func (d *DHCP) AddExclude(network, subnet, address string) error {
	return d.set("subnet-exclude", subnetArgs(network, subnet), address)
}

func (d *DHCP) SetRange(network, subnet, rangeID, start, stop string) error {
	args := subnetArgs(network, subnet)
	args["range"] = rangeID
	if err := d.set("subnet-range-start", args, start); err != nil {
		return err
	}
	return d.set("subnet-range-stop", args, stop)
}

func (d *DHCP) DeleteRange(network, subnet, rangeID string) error {
	args := subnetArgs(network, subnet)
	args["range"] = rangeID
	return d.delete("subnet-range", args)
}

// SetStaticMapping reserves an address for a host. Emits the MAC leaf before
// the IP leaf, the order the device expects when validating the mapping.
func (d *DHCP) SetStaticMapping(network, subnet, host, mac, ip string) error {
	args := subnetArgs(network, subnet)
	args["host"] = host
	if err := d.set("static-mapping-mac", args, mac); err != nil {
		return err
	}
	return d.set("static-mapping-ip", args, ip)
}

func (d *DHCP) DeleteStaticMapping(network, subnet, host string) error {
	args := subnetArgs(network, subnet)
	args["host"] = host
	return d.delete("static-mapping", args)
}
