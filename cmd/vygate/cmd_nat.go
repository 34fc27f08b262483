package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var natCmd = &cobra.Command{
	Use:   "nat",
	Short: "Manage NAT rules",
	Long: `Manage source, destination, and static NAT rules.

Static NAT requires VyOS 1.5. The outbound/inbound interface syntax
difference between 1.4 and 1.5 is handled automatically.

Examples:
  vygate -d edge1 nat source set 100 --out-iface eth0 --src 10.0.0.0/24 --to masquerade
  vygate -d edge1 nat destination set 10 --in-iface eth0 --dst-port 8080 --to 10.0.0.5 -x
  vygate -d edge1 nat source delete 100 -x`,
}

var (
	natOutIface  string
	natInIface   string
	natSrcAddr   string
	natDstAddr   string
	natDstPort   string
	natProtocol  string
	natTransAddr string
	natTransPort string
	natDesc      string
	natDisable   bool
)

func parseRuleNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid rule number: %s", s)
	}
	return n, nil
}

var natSourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage source NAT rules",
}

var natSourceSetCmd = &cobra.Command{
	Use:   "set <rule>",
	Short: "Create or update a source NAT rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := parseRuleNumber(args[0])
		if err != nil {
			return err
		}

		nat := mappers.NAT(profile.Version)
		if err := nat.CreateSourceRule(rule); err != nil {
			return buildError(err)
		}
		type step struct {
			when bool
			fn   func() error
		}
		for _, s := range []step{
			{natDesc != "", func() error { return nat.SetSourceRuleDescription(rule, natDesc) }},
			{natOutIface != "", func() error { return nat.SetSourceRuleOutboundInterface(rule, natOutIface) }},
			{natSrcAddr != "", func() error { return nat.SetSourceRuleSourceAddress(rule, natSrcAddr) }},
			{natProtocol != "", func() error { return nat.SetSourceRuleProtocol(rule, natProtocol) }},
			{natTransAddr != "", func() error { return nat.SetSourceRuleTranslationAddress(rule, natTransAddr) }},
			{natTransPort != "", func() error { return nat.SetSourceRuleTranslationPort(rule, natTransPort) }},
			{natDisable, func() error { return nat.DisableSourceRule(rule) }},
		} {
			if !s.when {
				continue
			}
			if err := s.fn(); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, nat.Batch)
	},
}

var natSourceDeleteCmd = &cobra.Command{
	Use:   "delete <rule>",
	Short: "Delete a source NAT rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := parseRuleNumber(args[0])
		if err != nil {
			return err
		}
		nat := mappers.NAT(profile.Version)
		if err := nat.DeleteSourceRule(rule); err != nil {
			return buildError(err)
		}
		return runBatch(profile, nat.Batch)
	},
}

var natSourceClearTranslationCmd = &cobra.Command{
	Use:   "clear-translation <rule>",
	Short: "Remove the translation address and port from a source NAT rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := parseRuleNumber(args[0])
		if err != nil {
			return err
		}
		nat := mappers.NAT(profile.Version)
		if err := nat.ClearSourceRuleTranslation(rule); err != nil {
			return buildError(err)
		}
		return runBatch(profile, nat.Batch)
	},
}

var natDestinationCmd = &cobra.Command{
	Use:     "destination",
	Aliases: []string{"dest"},
	Short:   "Manage destination NAT rules",
}

var natDestinationSetCmd = &cobra.Command{
	Use:   "set <rule>",
	Short: "Create or update a destination NAT rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := parseRuleNumber(args[0])
		if err != nil {
			return err
		}

		nat := mappers.NAT(profile.Version)
		if err := nat.CreateDestinationRule(rule); err != nil {
			return buildError(err)
		}
		type step struct {
			when bool
			fn   func() error
		}
		for _, s := range []step{
			{natDesc != "", func() error { return nat.SetDestinationRuleDescription(rule, natDesc) }},
			{natInIface != "", func() error { return nat.SetDestinationRuleInboundInterface(rule, natInIface) }},
			{natDstAddr != "", func() error { return nat.SetDestinationRuleDestinationAddress(rule, natDstAddr) }},
			{natDstPort != "", func() error { return nat.SetDestinationRuleDestinationPort(rule, natDstPort) }},
			{natProtocol != "", func() error { return nat.SetDestinationRuleProtocol(rule, natProtocol) }},
			{natTransAddr != "", func() error { return nat.SetDestinationRuleTranslationAddress(rule, natTransAddr) }},
			{natTransPort != "", func() error { return nat.SetDestinationRuleTranslationPort(rule, natTransPort) }},
			{natDisable, func() error { return nat.DisableDestinationRule(rule) }},
		} {
			if !s.when {
				continue
			}
			if err := s.fn(); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, nat.Batch)
	},
}

var natDestinationDeleteCmd = &cobra.Command{
	Use:   "delete <rule>",
	Short: "Delete a destination NAT rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := parseRuleNumber(args[0])
		if err != nil {
			return err
		}
		nat := mappers.NAT(profile.Version)
		if err := nat.DeleteDestinationRule(rule); err != nil {
			return buildError(err)
		}
		return runBatch(profile, nat.Batch)
	},
}

var natStaticCmd = &cobra.Command{
	Use:   "static",
	Short: "Manage static (one-to-one) NAT rules",
}

var natStaticSetCmd = &cobra.Command{
	Use:   "set <rule>",
	Short: "Create or update a static NAT rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := parseRuleNumber(args[0])
		if err != nil {
			return err
		}

		nat := mappers.NAT(profile.Version)
		if err := nat.CreateStaticRule(rule); err != nil {
			return buildError(err)
		}
		type step struct {
			when bool
			fn   func() error
		}
		for _, s := range []step{
			{natInIface != "", func() error { return nat.SetStaticRuleInboundInterface(rule, natInIface) }},
			{natDstAddr != "", func() error { return nat.SetStaticRuleDestinationAddress(rule, natDstAddr) }},
			{natTransAddr != "", func() error { return nat.SetStaticRuleTranslationAddress(rule, natTransAddr) }},
		} {
			if !s.when {
				continue
			}
			if err := s.fn(); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, nat.Batch)
	},
}

var natStaticDeleteCmd = &cobra.Command{
	Use:   "delete <rule>",
	Short: "Delete a static NAT rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := parseRuleNumber(args[0])
		if err != nil {
			return err
		}
		nat := mappers.NAT(profile.Version)
		if err := nat.DeleteStaticRule(rule); err != nil {
			return buildError(err)
		}
		return runBatch(profile, nat.Batch)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{natSourceSetCmd, natDestinationSetCmd, natStaticSetCmd} {
		flags := cmd.Flags()
		flags.StringVar(&natDesc, "description", "", "Rule description")
		flags.StringVar(&natProtocol, "protocol", "", "Protocol match")
		flags.StringVar(&natTransAddr, "to", "", "Translation address (or masquerade)")
		flags.StringVar(&natTransPort, "to-port", "", "Translation port")
		flags.BoolVar(&natDisable, "disable", false, "Create the rule disabled")
	}
	natSourceSetCmd.Flags().StringVar(&natOutIface, "out-iface", "", "Outbound interface")
	natSourceSetCmd.Flags().StringVar(&natSrcAddr, "src", "", "Source address match")
	natDestinationSetCmd.Flags().StringVar(&natInIface, "in-iface", "", "Inbound interface")
	natDestinationSetCmd.Flags().StringVar(&natDstAddr, "dst", "", "Destination address match")
	natDestinationSetCmd.Flags().StringVar(&natDstPort, "dst-port", "", "Destination port match")
	natStaticSetCmd.Flags().StringVar(&natInIface, "in-iface", "", "Inbound interface")
	natStaticSetCmd.Flags().StringVar(&natDstAddr, "dst", "", "Destination address match")

	natSourceCmd.AddCommand(natSourceSetCmd, natSourceDeleteCmd, natSourceClearTranslationCmd)
	natDestinationCmd.AddCommand(natDestinationSetCmd, natDestinationDeleteCmd)
	natStaticCmd.AddCommand(natStaticSetCmd, natStaticDeleteCmd)
	natCmd.AddCommand(natSourceCmd, natDestinationCmd, natStaticCmd)
}
