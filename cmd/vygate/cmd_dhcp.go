package main

import (
	"github.com/spf13/cobra"
)

var dhcpCmd = &cobra.Command{
	Use:   "dhcp",
	Short: "Manage DHCP server shared networks",
	Long: `Manage DHCP server shared networks, subnets, ranges, and static
mappings. Option placement and static-mapping syntax differ between
VyOS 1.4 and 1.5; both are compiled from the same commands.

Examples:
  vygate -d edge1 dhcp network create LAN
  vygate -d edge1 dhcp subnet create LAN 10.0.0.0/24 --router 10.0.0.1 --dns 10.0.0.1 -x
  vygate -d edge1 dhcp range set LAN 10.0.0.0/24 0 10.0.0.100 10.0.0.200 -x
  vygate -d edge1 dhcp static set LAN 10.0.0.0/24 printer 00:11:22:33:44:55 10.0.0.9 -x`,
}

var dhcpNetworkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage shared networks",
}

var dhcpNetworkCreateCmd = &cobra.Command{
	Use:   "create <network>",
	Short: "Create a shared network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		d := mappers.DHCP(profile.Version)
		if err := d.CreateSharedNetwork(args[0]); err != nil {
			return buildError(err)
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			if err := d.SetSharedNetworkDescription(args[0], desc); err != nil {
				return buildError(err)
			}
		}
		if auth, _ := cmd.Flags().GetBool("authoritative"); auth {
			if err := d.SetAuthoritative(args[0]); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, d.Batch)
	},
}

var dhcpNetworkDeleteCmd = &cobra.Command{
	Use:   "delete <network>",
	Short: "Delete a shared network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		d := mappers.DHCP(profile.Version)
		if err := d.DeleteSharedNetwork(args[0]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, d.Batch)
	},
}

var (
	dhcpRouter   string
	dhcpDNS      []string
	dhcpDomain   string
	dhcpLease    string
	dhcpSubnetID string
	dhcpExcludes []string
)

var dhcpSubnetCmd = &cobra.Command{
	Use:   "subnet",
	Short: "Manage subnets within a shared network",
}

var dhcpSubnetCreateCmd = &cobra.Command{
	Use:   "create <network> <subnet>",
	Short: "Create a subnet",
	Long: `Create a subnet under a shared network.

The --subnet-id option only exists on VyOS 1.5; on 1.4 it is skipped
without error so one invocation serves both versions.

Example:
  vygate -d edge1 dhcp subnet create LAN 10.0.0.0/24 --router 10.0.0.1 --dns 10.0.0.1 --subnet-id 1 -x`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		network, subnet := args[0], args[1]

		d := mappers.DHCP(profile.Version)
		if err := d.CreateSubnet(network, subnet); err != nil {
			return buildError(err)
		}
		type step struct {
			when bool
			fn   func() error
		}
		for _, s := range []step{
			{dhcpSubnetID != "", func() error { return d.SetSubnetID(network, subnet, dhcpSubnetID) }},
			{dhcpRouter != "", func() error { return d.SetDefaultRouter(network, subnet, dhcpRouter) }},
			{dhcpDomain != "", func() error { return d.SetDomainName(network, subnet, dhcpDomain) }},
			{dhcpLease != "", func() error { return d.SetLease(network, subnet, dhcpLease) }},
		} {
			if !s.when {
				continue
			}
			if err := s.fn(); err != nil {
				return buildError(err)
			}
		}
		for _, server := range dhcpDNS {
			if err := d.AddNameServer(network, subnet, server); err != nil {
				return buildError(err)
			}
		}
		for _, addr := range dhcpExcludes {
			if err := d.AddExclude(network, subnet, addr); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, d.Batch)
	},
}

var dhcpSubnetDeleteCmd = &cobra.Command{
	Use:   "delete <network> <subnet>",
	Short: "Delete a subnet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		d := mappers.DHCP(profile.Version)
		if err := d.DeleteSubnet(args[0], args[1]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, d.Batch)
	},
}

var dhcpRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Manage address ranges",
}

var dhcpRangeSetCmd = &cobra.Command{
	Use:   "set <network> <subnet> <range-id> <start> <stop>",
	Short: "Set an address range",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		d := mappers.DHCP(profile.Version)
		if err := d.SetRange(args[0], args[1], args[2], args[3], args[4]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, d.Batch)
	},
}

var dhcpRangeDeleteCmd = &cobra.Command{
	Use:   "delete <network> <subnet> <range-id>",
	Short: "Delete an address range",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		d := mappers.DHCP(profile.Version)
		if err := d.DeleteRange(args[0], args[1], args[2]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, d.Batch)
	},
}

var dhcpStaticCmd = &cobra.Command{
	Use:   "static",
	Short: "Manage static mappings",
}

var dhcpStaticSetCmd = &cobra.Command{
	Use:   "set <network> <subnet> <host> <mac> <ip>",
	Short: "Set a static mapping",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		d := mappers.DHCP(profile.Version)
		if err := d.SetStaticMapping(args[0], args[1], args[2], args[3], args[4]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, d.Batch)
	},
}

var dhcpStaticDeleteCmd = &cobra.Command{
	Use:   "delete <network> <subnet> <host>",
	Short: "Delete a static mapping",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		d := mappers.DHCP(profile.Version)
		if err := d.DeleteStaticMapping(args[0], args[1], args[2]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, d.Batch)
	},
}

func init() {
	dhcpNetworkCreateCmd.Flags().String("description", "", "Shared network description")
	dhcpNetworkCreateCmd.Flags().Bool("authoritative", false, "Mark the server authoritative for this network")

	flags := dhcpSubnetCreateCmd.Flags()
	flags.StringVar(&dhcpRouter, "router", "", "Default router handed to clients")
	flags.StringSliceVar(&dhcpDNS, "dns", nil, "Name servers handed to clients (repeatable)")
	flags.StringVar(&dhcpDomain, "domain", "", "Domain name handed to clients")
	flags.StringVar(&dhcpLease, "lease", "", "Lease time in seconds")
	flags.StringVar(&dhcpSubnetID, "subnet-id", "", "Subnet identifier (VyOS 1.5 only, skipped on 1.4)")
	flags.StringSliceVar(&dhcpExcludes, "exclude", nil, "Addresses excluded from ranges (repeatable)")

	dhcpNetworkCmd.AddCommand(dhcpNetworkCreateCmd, dhcpNetworkDeleteCmd)
	dhcpSubnetCmd.AddCommand(dhcpSubnetCreateCmd, dhcpSubnetDeleteCmd)
	dhcpRangeCmd.AddCommand(dhcpRangeSetCmd, dhcpRangeDeleteCmd)
	dhcpStaticCmd.AddCommand(dhcpStaticSetCmd, dhcpStaticDeleteCmd)
	dhcpCmd.AddCommand(dhcpNetworkCmd, dhcpSubnetCmd, dhcpRangeCmd, dhcpStaticCmd)
}
