package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vygate-network/vygate/pkg/cli"
	"github.com/vygate-network/vygate/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.vygate/settings.json.

Settings provide defaults for context flags:
  - default_device:  Used when -d is not specified
  - inventory_path:  Device inventory file (--inventory default)
  - audit_log:       Audit trail file; empty disables auditing

Examples:
  vygate settings show
  vygate settings set device edge1
  vygate settings set inventory /etc/vygate/inventory.yaml
  vygate settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable("SETTING", "VALUE")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("default_device", s.DefaultDevice)
		printSetting("inventory_path", s.InventoryPath)
		printSetting("audit_log", s.AuditLog)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  device     - Default device name (-d flag default)
  inventory  - Device inventory file (--inventory flag default)
  audit-log  - Audit trail file

Examples:
  vygate settings set device edge1
  vygate settings set inventory /etc/vygate/inventory.yaml
  vygate settings set audit-log /var/log/vygate/audit.jsonl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "device", "default_device":
			s.SetDefaultDevice(value)
			fmt.Printf("Default device set to: %s\n", value)
		case "inventory", "inventory_path":
			s.SetInventoryPath(value)
			fmt.Printf("Inventory file set to: %s\n", value)
		case "audit-log", "audit_log":
			s.SetAuditLog(value)
			fmt.Printf("Audit log set to: %s\n", value)
		default:
			return fmt.Errorf("unknown setting: %s (valid: device, inventory, audit-log)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <setting>",
	Short: "Get a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		var value string
		switch args[0] {
		case "device", "default_device":
			value = s.DefaultDevice
		case "inventory", "inventory_path":
			value = s.InventoryPath
		case "audit-log", "audit_log":
			value = s.AuditLog
		default:
			return fmt.Errorf("unknown setting: %s (valid: device, inventory, audit-log)", args[0])
		}

		if value == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(value)
		}
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("All settings cleared.")
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show settings file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(settings.DefaultSettingsPath())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}
