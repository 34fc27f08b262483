package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vygate-network/vygate/pkg/cli"
	"github.com/vygate-network/vygate/pkg/util"
	"github.com/vygate-network/vygate/pkg/vyos"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show device and compiler state",
	Long: `Show device configuration, capability matrices, inventory, and
supported feature families.

Examples:
  vygate -d edge1 show config
  vygate -d edge1 show config --refresh
  vygate -d edge1 show capabilities firewall-group
  vygate show devices
  vygate show families`,
}

var showRefresh bool

var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the device's full configuration",
	Long: `Show the device's full configuration tree as JSON.

Reads are served from the snapshot cache when available; --refresh forces
a device round trip.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}
		sess, closeSession, err := connectSession(profile)
		if err != nil {
			return err
		}
		defer closeSession()

		snap, err := sess.GetFullConfig(context.Background(), showRefresh)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(snap)
		}

		pretty, err := json.MarshalIndent(json.RawMessage(snap.Config), "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("Device: %s (fetched %s)\n", cli.Bold(snap.Device),
			snap.FetchedAt.Format("2006-01-02 15:04:05"))
		fmt.Println(string(pretty))
		return nil
	},
}

var showCapabilitiesCmd = &cobra.Command{
	Use:   "capabilities <family>[,<family>...]",
	Short: "Show the capability matrix for feature families",
	Long: `Show which sub-features of a family the device's firmware version
supports. Pure table lookup; no device round trip.

Examples:
  vygate -d edge1 show capabilities firewall-group
  vygate -d edge1 show capabilities firewall-group,nat,policy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := requireProfile()
		if err != nil {
			return err
		}

		var matrices []*vyos.CapabilityMatrix
		for _, family := range util.SplitCommaSeparated(args[0]) {
			matrix, err := vyos.Capabilities(family, profile.Version)
			if err != nil {
				return err
			}
			matrices = append(matrices, matrix)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(matrices)
		}

		for _, matrix := range matrices {
			fmt.Printf("Family: %s\nVersion: %s\n\n", cli.Bold(matrix.Family), matrix.Version)
			if len(matrix.Features) == 0 {
				fmt.Println("No version-gated features in this family.")
				continue
			}

			names := make([]string, 0, len(matrix.Features))
			for name := range matrix.Features {
				names = append(names, name)
			}
			sort.Strings(names)

			t := cli.NewTable("FEATURE", "SUPPORTED", "DESCRIPTION")
			for _, name := range names {
				feature := matrix.Features[name]
				status := cli.Green("yes")
				if !feature.Supported {
					status = cli.Red("no")
				}
				t.Row(name, status, feature.Description)
			}
			t.Flush()
			fmt.Println()
		}
		return nil
	},
}

var showDevicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices in the inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := loader.Devices()
		sort.Strings(names)

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(names)
		}

		t := cli.NewTable("DEVICE", "ADDRESS", "VERSION")
		for _, name := range names {
			profile, err := loader.Profile(name)
			if err != nil {
				continue
			}
			t.Row(profile.Name, profile.Address, profile.Version)
		}
		t.Flush()
		return nil
	},
}

var showFamiliesCmd = &cobra.Command{
	Use:   "families",
	Short: "List supported feature families and their operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		families := vyos.Families()
		sort.Strings(families)

		if jsonOutput {
			out := make(map[string][]string, len(families))
			for _, family := range families {
				s, _ := vyos.FamilySchema(family)
				m := vyos.NewMapper(s, "")
				out[family] = m.Operations()
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		for _, family := range families {
			s, _ := vyos.FamilySchema(family)
			m := vyos.NewMapper(s, "")
			fmt.Println(cli.Bold(family))
			for _, op := range m.Operations() {
				fmt.Println("  " + op)
			}
		}
		return nil
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showRefresh, "refresh", false, "Bypass the snapshot cache")

	showCmd.AddCommand(showConfigCmd, showCapabilitiesCmd, showDevicesCmd, showFamiliesCmd)
}
