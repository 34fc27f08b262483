package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vygate-network/vygate/pkg/util"
	"github.com/vygate-network/vygate/pkg/vyos"
)

var firewallCmd = &cobra.Command{
	Use:   "firewall",
	Short: "Manage firewall groups and rule sets",
	Long: `Manage firewall groups and rule sets.

Group kinds: address, network, port, mac, domain, interface.
Domain and interface groups require VyOS 1.5.

Examples:
  vygate -d edge1 firewall group create address SERVERS
  vygate -d edge1 firewall group add-member address SERVERS 10.0.0.1 -x
  vygate -d edge1 firewall rule create WAN-IN 10 --action accept --protocol tcp -x
  vygate -d edge1 firewall rule renumber WAN-IN 10:100 20:200 -x`,
}

var firewallGroupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage firewall groups",
}

var firewallGroupCreateCmd = &cobra.Command{
	Use:   "create <kind> <name>",
	Short: "Create a firewall group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		fw := mappers.FirewallGroups(profile.Version)
		if err := groupCreate(fw, args[0], args[1]); err != nil {
			return buildError(err)
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			if err := groupDescribe(fw, args[0], args[1], desc); err != nil {
				return buildError(err)
			}
		}
		for _, member := range groupMembers {
			if err := groupAddMember(fw, args[0], args[1], member); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, fw.Batch)
	},
}

var firewallGroupDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <name>",
	Short: "Delete a firewall group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		fw := mappers.FirewallGroups(profile.Version)
		if err := groupDelete(fw, args[0], args[1]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, fw.Batch)
	},
}

var firewallGroupAddMemberCmd = &cobra.Command{
	Use:   "add-member <kind> <name> <member>...",
	Short: "Add members to a firewall group",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		fw := mappers.FirewallGroups(profile.Version)
		for _, member := range args[2:] {
			if err := groupAddMember(fw, args[0], args[1], member); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, fw.Batch)
	},
}

var firewallGroupRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member <kind> <name> <member>...",
	Short: "Remove members from a firewall group",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		fw := mappers.FirewallGroups(profile.Version)
		for _, member := range args[2:] {
			if err := groupRemoveMember(fw, args[0], args[1], member); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, fw.Batch)
	},
}

// groupCreate dispatches on the group kind. Unknown kinds fail before
// anything is appended to the batch.
func groupCreate(fw *vyos.FirewallGroups, kind, name string) error {
	switch kind {
	case "address":
		return fw.CreateAddressGroup(name)
	case "network":
		return fw.CreateNetworkGroup(name)
	case "port":
		return fw.CreatePortGroup(name)
	case "mac":
		return fw.CreateMacGroup(name)
	case "domain":
		return fw.CreateDomainGroup(name)
	case "interface":
		return fw.CreateInterfaceGroup(name)
	}
	return fmt.Errorf("unknown group kind: %s (valid: address, network, port, mac, domain, interface)", kind)
}

func groupDelete(fw *vyos.FirewallGroups, kind, name string) error {
	switch kind {
	case "address":
		return fw.DeleteAddressGroup(name)
	case "network":
		return fw.DeleteNetworkGroup(name)
	case "port":
		return fw.DeletePortGroup(name)
	case "mac":
		return fw.DeleteMacGroup(name)
	case "domain":
		return fw.DeleteDomainGroup(name)
	case "interface":
		return fw.DeleteInterfaceGroup(name)
	}
	return fmt.Errorf("unknown group kind: %s", kind)
}

func groupAddMember(fw *vyos.FirewallGroups, kind, name, member string) error {
	switch kind {
	case "address":
		return fw.AddAddressGroupMember(name, member)
	case "network":
		return fw.AddNetworkGroupMember(name, member)
	case "port":
		return fw.AddPortGroupMember(name, member)
	case "mac":
		return fw.AddMacGroupMember(name, member)
	case "domain":
		return fw.AddDomainGroupMember(name, member)
	case "interface":
		return fw.AddInterfaceGroupMember(name, member)
	}
	return fmt.Errorf("unknown group kind: %s", kind)
}

func groupRemoveMember(fw *vyos.FirewallGroups, kind, name, member string) error {
	switch kind {
	case "address":
		return fw.RemoveAddressGroupMember(name, member)
	}
	return fmt.Errorf("remove-member supports address groups only (got %s)", kind)
}

func groupDescribe(fw *vyos.FirewallGroups, kind, name, desc string) error {
	switch kind {
	case "address":
		return fw.SetAddressGroupDescription(name, desc)
	case "network":
		return fw.SetNetworkGroupDescription(name, desc)
	case "port":
		return fw.SetPortGroupDescription(name, desc)
	}
	return fmt.Errorf("description not supported for %s groups", kind)
}

var groupMembers []string

// ----------------------------------------------------------------------------
// Rule sets
// ----------------------------------------------------------------------------

var firewallRuleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage firewall rule sets",
}

var firewallRuleSetCreateCmd = &cobra.Command{
	Use:   "create-set <name>",
	Short: "Create a rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		fw := mappers.FirewallRules(profile.Version)
		if err := fw.CreateRuleSet(args[0]); err != nil {
			return buildError(err)
		}
		if action, _ := cmd.Flags().GetString("default-action"); action != "" {
			if err := fw.SetDefaultAction(args[0], action); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, fw.Batch)
	},
}

var firewallRuleSetDeleteCmd = &cobra.Command{
	Use:   "delete-set <name>",
	Short: "Delete a rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		fw := mappers.FirewallRules(profile.Version)
		if err := fw.DeleteRuleSet(args[0]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, fw.Batch)
	},
}

var (
	ruleAction    string
	ruleProtocol  string
	ruleSrcAddr   string
	ruleSrcPort   string
	ruleDstAddr   string
	ruleDstPort   string
	ruleSrcGroup  string
	ruleDstGroup  string
	ruleJump      string
	ruleLog       bool
	ruleDisable   bool
	ruleDesc      string
)

var firewallRuleCreateCmd = &cobra.Command{
	Use:   "create <set> <number>",
	Short: "Create or update a rule",
	Long: `Create or update a numbered rule within a rule set.

Group references take the form kind:NAME, e.g. --src-group address:SERVERS.

Examples:
  vygate -d edge1 firewall rule create WAN-IN 10 --action accept --protocol tcp --dst-port 443
  vygate -d edge1 firewall rule create WAN-IN 20 --action drop --src-group network:BOGONS -x`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		ruleNum, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule number: %s", args[1])
		}

		fw := mappers.FirewallRules(profile.Version)
		if err := buildRule(fw, args[0], ruleNum); err != nil {
			return buildError(err)
		}
		return runBatch(profile, fw.Batch)
	},
}

func buildRule(fw *vyos.FirewallRules, set string, rule int) error {
	if err := fw.CreateRule(set, rule); err != nil {
		return err
	}

	type step struct {
		when bool
		fn   func() error
	}
	steps := []step{
		{ruleAction != "", func() error { return fw.SetRuleAction(set, rule, ruleAction) }},
		{ruleDesc != "", func() error { return fw.SetRuleDescription(set, rule, ruleDesc) }},
		{ruleProtocol != "", func() error { return fw.SetRuleProtocol(set, rule, ruleProtocol) }},
		{ruleSrcAddr != "", func() error { return fw.SetRuleSourceAddress(set, rule, ruleSrcAddr) }},
		{ruleSrcPort != "", func() error { return fw.SetRuleSourcePort(set, rule, ruleSrcPort) }},
		{ruleDstAddr != "", func() error { return fw.SetRuleDestinationAddress(set, rule, ruleDstAddr) }},
		{ruleDstPort != "", func() error { return fw.SetRuleDestinationPort(set, rule, ruleDstPort) }},
		{ruleJump != "", func() error { return fw.SetRuleJumpTarget(set, rule, ruleJump) }},
		{ruleLog, func() error { return fw.EnableRuleLog(set, rule) }},
		{ruleDisable, func() error { return fw.DisableRule(set, rule) }},
	}
	for _, s := range steps {
		if !s.when {
			continue
		}
		if err := s.fn(); err != nil {
			return err
		}
	}

	if ruleSrcGroup != "" {
		kind, group, err := splitGroupRef(ruleSrcGroup)
		if err != nil {
			return err
		}
		if err := fw.SetRuleSourceGroup(set, rule, kind, group); err != nil {
			return err
		}
	}
	if ruleDstGroup != "" {
		kind, group, err := splitGroupRef(ruleDstGroup)
		if err != nil {
			return err
		}
		if err := fw.SetRuleDestinationGroup(set, rule, kind, group); err != nil {
			return err
		}
	}
	return nil
}

// splitGroupRef parses "kind:NAME" into a group kind token and name.
func splitGroupRef(ref string) (string, string, error) {
	kind, name, ok := strings.Cut(ref, ":")
	if !ok || kind == "" || name == "" {
		return "", "", fmt.Errorf("invalid group reference %q (want kind:NAME)", ref)
	}
	return kind + "-group", name, nil
}

var firewallRuleDeleteCmd = &cobra.Command{
	Use:   "delete <set> <numbers>",
	Short: "Delete rules",
	Long: `Delete one or more rules from a set in one atomic batch.

Numbers accept ranges and lists:
  vygate -d edge1 firewall rule delete WAN-IN 10
  vygate -d edge1 firewall rule delete WAN-IN 10-13,20 -x`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rules, err := util.ExpandRange(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule numbers: %w", err)
		}
		if len(rules) == 0 {
			return fmt.Errorf("no rule numbers given")
		}
		fw := mappers.FirewallRules(profile.Version)
		for _, rule := range rules {
			if err := fw.DeleteRule(args[0], rule); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, fw.Batch)
	},
}

var firewallRuleRenumberCmd = &cobra.Command{
	Use:   "renumber <set> <old:new>...",
	Short: "Renumber rules within a set",
	Long: `Renumber rules within a set in one atomic batch. All deletes are
emitted before any creates, so old and new numberings may overlap.

Example:
  vygate -d edge1 firewall rule renumber WAN-IN 10:100 20:200 -x`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}

		var moves []vyos.RuleMove
		for _, arg := range args[1:] {
			oldStr, newStr, ok := strings.Cut(arg, ":")
			if !ok {
				return fmt.Errorf("invalid move %q (want old:new)", arg)
			}
			oldNum, err := strconv.Atoi(oldStr)
			if err != nil {
				return fmt.Errorf("invalid move %q: %v", arg, err)
			}
			newNum, err := strconv.Atoi(newStr)
			if err != nil {
				return fmt.Errorf("invalid move %q: %v", arg, err)
			}
			moves = append(moves, vyos.RuleMove{Old: oldNum, New: newNum})
		}

		fw := mappers.FirewallRules(profile.Version)
		if err := fw.RenumberRules(args[0], moves); err != nil {
			return buildError(err)
		}
		return runBatch(profile, fw.Batch)
	},
}

func init() {
	firewallGroupCreateCmd.Flags().String("description", "", "Group description")
	firewallGroupCreateCmd.Flags().StringSliceVar(&groupMembers, "member", nil, "Initial members (repeatable)")

	firewallRuleSetCreateCmd.Flags().String("default-action", "", "Default action for unmatched traffic")

	flags := firewallRuleCreateCmd.Flags()
	flags.StringVar(&ruleAction, "action", "", "Rule action (accept, drop, reject, jump)")
	flags.StringVar(&ruleDesc, "description", "", "Rule description")
	flags.StringVar(&ruleProtocol, "protocol", "", "Protocol match")
	flags.StringVar(&ruleSrcAddr, "src-addr", "", "Source address match")
	flags.StringVar(&ruleSrcPort, "src-port", "", "Source port match")
	flags.StringVar(&ruleDstAddr, "dst-addr", "", "Destination address match")
	flags.StringVar(&ruleDstPort, "dst-port", "", "Destination port match")
	flags.StringVar(&ruleSrcGroup, "src-group", "", "Source group match (kind:NAME)")
	flags.StringVar(&ruleDstGroup, "dst-group", "", "Destination group match (kind:NAME)")
	flags.StringVar(&ruleJump, "jump-target", "", "Jump target rule set (requires --action jump)")
	flags.BoolVar(&ruleLog, "log", false, "Log matching packets")
	flags.BoolVar(&ruleDisable, "disable", false, "Create the rule disabled")

	firewallGroupCmd.AddCommand(
		firewallGroupCreateCmd,
		firewallGroupDeleteCmd,
		firewallGroupAddMemberCmd,
		firewallGroupRemoveMemberCmd,
	)
	firewallRuleCmd.AddCommand(
		firewallRuleSetCreateCmd,
		firewallRuleSetDeleteCmd,
		firewallRuleCreateCmd,
		firewallRuleDeleteCmd,
		firewallRuleRenumberCmd,
	)
	firewallCmd.AddCommand(firewallGroupCmd, firewallRuleCmd)
}
