package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Manage routing policy objects",
	Long: `Manage route maps, access lists, prefix lists, and large community
lists. Large community lists require VyOS 1.5.

Examples:
  vygate -d edge1 policy route-map rule UPSTREAM 10 --action permit --match-prefix-list CUSTOMERS
  vygate -d edge1 policy access-list rule 101 5 --action permit --src 10.0.0.0 0.0.0.255 -x
  vygate -d edge1 policy prefix-list rule CUSTOMERS 10 --action permit --prefix 192.0.2.0/24 --le 28 -x`,
}

// ----------------------------------------------------------------------------
// Route maps
// ----------------------------------------------------------------------------

var routeMapCmd = &cobra.Command{
	Use:   "route-map",
	Short: "Manage route maps",
}

var routeMapCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a route map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		p := mappers.Policy(profile.Version)
		if err := p.CreateRouteMap(args[0]); err != nil {
			return buildError(err)
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			if err := p.SetRouteMapDescription(args[0], desc); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, p.Batch)
	},
}

var routeMapDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a route map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		p := mappers.Policy(profile.Version)
		if err := p.DeleteRouteMap(args[0]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, p.Batch)
	},
}

var (
	rmAction     string
	rmPrefixList string
	rmAccessList string
	rmLocalPref  string
	rmMetric     string
	rmNextHop    string
)

var routeMapRuleCmd = &cobra.Command{
	Use:   "rule <name> <number>",
	Short: "Create or update a route map rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule number: %s", args[1])
		}
		name := args[0]

		p := mappers.Policy(profile.Version)
		if err := p.CreateRouteMapRule(name, rule); err != nil {
			return buildError(err)
		}
		type step struct {
			when bool
			fn   func() error
		}
		for _, s := range []step{
			{rmAction != "", func() error { return p.SetRouteMapRuleAction(name, rule, rmAction) }},
			{rmPrefixList != "", func() error { return p.SetRouteMapRuleMatchPrefixList(name, rule, rmPrefixList) }},
			{rmAccessList != "", func() error { return p.SetRouteMapRuleMatchAccessList(name, rule, rmAccessList) }},
			{rmLocalPref != "", func() error { return p.SetRouteMapRuleLocalPreference(name, rule, rmLocalPref) }},
			{rmMetric != "", func() error { return p.SetRouteMapRuleMetric(name, rule, rmMetric) }},
			{rmNextHop != "", func() error { return p.SetRouteMapRuleNextHop(name, rule, rmNextHop) }},
		} {
			if !s.when {
				continue
			}
			if err := s.fn(); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, p.Batch)
	},
}

var routeMapRuleDeleteCmd = &cobra.Command{
	Use:   "delete-rule <name> <number>",
	Short: "Delete a route map rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule number: %s", args[1])
		}
		p := mappers.Policy(profile.Version)
		if err := p.DeleteRouteMapRule(args[0], rule); err != nil {
			return buildError(err)
		}
		return runBatch(profile, p.Batch)
	},
}

// ----------------------------------------------------------------------------
// Access lists
// ----------------------------------------------------------------------------

var accessListCmd = &cobra.Command{
	Use:   "access-list",
	Short: "Manage access lists",
}

var accessListCreateCmd = &cobra.Command{
	Use:   "create <list>",
	Short: "Create an access list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		p := mappers.Policy(profile.Version)
		if err := p.CreateAccessList(args[0]); err != nil {
			return buildError(err)
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			if err := p.SetAccessListDescription(args[0], desc); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, p.Batch)
	},
}

var accessListDeleteCmd = &cobra.Command{
	Use:   "delete <list>",
	Short: "Delete an access list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		p := mappers.Policy(profile.Version)
		if err := p.DeleteAccessList(args[0]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, p.Batch)
	},
}

var (
	alAction string
	alSrc    []string
	alDst    []string
	alSrcAny bool
	alDstAny bool
)

var accessListRuleCmd = &cobra.Command{
	Use:   "rule <list> <number>",
	Short: "Create or update an access list rule",
	Long: `Create or update an access list rule.

Source and destination matches take a network and an inverse mask:
  --src 10.0.0.0 0.0.0.255

Example:
  vygate -d edge1 policy access-list rule 101 5 --action permit --src 10.0.0.0 0.0.0.255 -x`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule number: %s", args[1])
		}
		list := args[0]

		p := mappers.Policy(profile.Version)
		if alAction != "" {
			if err := p.SetAccessListRuleAction(list, rule, alAction); err != nil {
				return buildError(err)
			}
		}
		switch {
		case alSrcAny:
			if err := p.SetAccessListRuleSourceAny(list, rule); err != nil {
				return buildError(err)
			}
		case len(alSrc) == 2:
			if err := p.SetAccessListRuleSource(list, rule, alSrc[0], alSrc[1]); err != nil {
				return buildError(err)
			}
		case len(alSrc) != 0:
			return fmt.Errorf("--src needs a network and an inverse mask")
		}
		switch {
		case alDstAny:
			if err := p.SetAccessListRuleDestinationAny(list, rule); err != nil {
				return buildError(err)
			}
		case len(alDst) == 2:
			if err := p.SetAccessListRuleDestination(list, rule, alDst[0], alDst[1]); err != nil {
				return buildError(err)
			}
		case len(alDst) != 0:
			return fmt.Errorf("--dst needs a network and an inverse mask")
		}
		return runBatch(profile, p.Batch)
	},
}

// ----------------------------------------------------------------------------
// Prefix lists
// ----------------------------------------------------------------------------

var prefixListCmd = &cobra.Command{
	Use:   "prefix-list",
	Short: "Manage prefix lists",
}

var prefixListCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a prefix list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		p := mappers.Policy(profile.Version)
		if err := p.CreatePrefixList(args[0]); err != nil {
			return buildError(err)
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			if err := p.SetPrefixListDescription(args[0], desc); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, p.Batch)
	},
}

var prefixListDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a prefix list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		p := mappers.Policy(profile.Version)
		if err := p.DeletePrefixList(args[0]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, p.Batch)
	},
}

var (
	plAction string
	plPrefix string
	plLe     string
	plGe     string
)

var prefixListRuleCmd = &cobra.Command{
	Use:   "rule <name> <number>",
	Short: "Create or update a prefix list rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule number: %s", args[1])
		}
		name := args[0]

		p := mappers.Policy(profile.Version)
		type step struct {
			when bool
			fn   func() error
		}
		for _, s := range []step{
			{plAction != "", func() error { return p.SetPrefixListRuleAction(name, rule, plAction) }},
			{plPrefix != "", func() error { return p.SetPrefixListRulePrefix(name, rule, plPrefix) }},
			{plLe != "", func() error { return p.SetPrefixListRuleLe(name, rule, plLe) }},
			{plGe != "", func() error { return p.SetPrefixListRuleGe(name, rule, plGe) }},
		} {
			if !s.when {
				continue
			}
			if err := s.fn(); err != nil {
				return buildError(err)
			}
		}
		return runBatch(profile, p.Batch)
	},
}

// ----------------------------------------------------------------------------
// Large community lists
// ----------------------------------------------------------------------------

var largeCommunityCmd = &cobra.Command{
	Use:   "large-community-list",
	Short: "Manage large community lists (VyOS 1.5 only)",
}

var largeCommunityCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a large community list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		p := mappers.Policy(profile.Version)
		if err := p.CreateLargeCommunityList(args[0]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, p.Batch)
	},
}

var largeCommunityRuleCmd = &cobra.Command{
	Use:   "rule <name> <number> <action> <regex>",
	Short: "Create or update a large community list rule",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		rule, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule number: %s", args[1])
		}
		p := mappers.Policy(profile.Version)
		if err := p.SetLargeCommunityListRuleAction(args[0], rule, args[2]); err != nil {
			return buildError(err)
		}
		if err := p.SetLargeCommunityListRuleRegex(args[0], rule, args[3]); err != nil {
			return buildError(err)
		}
		return runBatch(profile, p.Batch)
	},
}

func init() {
	routeMapCreateCmd.Flags().String("description", "", "Route map description")
	flags := routeMapRuleCmd.Flags()
	flags.StringVar(&rmAction, "action", "", "Rule action (permit, deny)")
	flags.StringVar(&rmPrefixList, "match-prefix-list", "", "Match a prefix list")
	flags.StringVar(&rmAccessList, "match-access-list", "", "Match an access list")
	flags.StringVar(&rmLocalPref, "set-local-pref", "", "Set BGP local preference")
	flags.StringVar(&rmMetric, "set-metric", "", "Set route metric")
	flags.StringVar(&rmNextHop, "set-next-hop", "", "Set next hop address")

	accessListCreateCmd.Flags().String("description", "", "Access list description")
	alFlags := accessListRuleCmd.Flags()
	alFlags.StringVar(&alAction, "action", "", "Rule action (permit, deny)")
	alFlags.StringSliceVar(&alSrc, "src", nil, "Source network and inverse mask")
	alFlags.StringSliceVar(&alDst, "dst", nil, "Destination network and inverse mask")
	alFlags.BoolVar(&alSrcAny, "src-any", false, "Match any source")
	alFlags.BoolVar(&alDstAny, "dst-any", false, "Match any destination")

	prefixListCreateCmd.Flags().String("description", "", "Prefix list description")
	plFlags := prefixListRuleCmd.Flags()
	plFlags.StringVar(&plAction, "action", "", "Rule action (permit, deny)")
	plFlags.StringVar(&plPrefix, "prefix", "", "Prefix to match")
	plFlags.StringVar(&plLe, "le", "", "Match prefixes up to this length")
	plFlags.StringVar(&plGe, "ge", "", "Match prefixes down from this length")

	routeMapCmd.AddCommand(routeMapCreateCmd, routeMapDeleteCmd, routeMapRuleCmd, routeMapRuleDeleteCmd)
	accessListCmd.AddCommand(accessListCreateCmd, accessListDeleteCmd, accessListRuleCmd)
	prefixListCmd.AddCommand(prefixListCreateCmd, prefixListDeleteCmd, prefixListRuleCmd)
	largeCommunityCmd.AddCommand(largeCommunityCreateCmd, largeCommunityRuleCmd)
	policyCmd.AddCommand(routeMapCmd, accessListCmd, prefixListCmd, largeCommunityCmd)
}
