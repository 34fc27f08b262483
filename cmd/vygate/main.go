// Vygate - VyOS Configuration Gateway
//
// A CLI tool for managing VyOS routers over their HTTP API with:
//   - Version-aware command compilation (1.4 and 1.5 syntax from one call)
//   - Transactional batches (all-or-nothing commit per request)
//   - Dry-run by default (preview compiled commands, require -x to execute)
//   - Audit logging of all changes
//
// Context flags select the device; commands compile batches against it:
//
//	vygate -d <device> <family> <verb> [args] [-x]
//
// Examples:
//
//	vygate -d edge1 firewall group create address SERVERS
//	vygate -d edge1 firewall group add-member address SERVERS 10.0.0.1 -x
//	vygate -d edge1 nat source set 100 --out-iface eth0 --to 192.0.2.1 -x
//	vygate -d edge1 show config --refresh
//	vygate -d edge1 show capabilities firewall-group
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vygate-network/vygate/pkg/audit"
	"github.com/vygate-network/vygate/pkg/cli"
	"github.com/vygate-network/vygate/pkg/device"
	"github.com/vygate-network/vygate/pkg/settings"
	"github.com/vygate-network/vygate/pkg/spec"
	"github.com/vygate-network/vygate/pkg/util"
	"github.com/vygate-network/vygate/pkg/version"
	"github.com/vygate-network/vygate/pkg/vyos"
)

var (
	// Context flags (object selectors)
	deviceName    string // -d, --device
	inventoryPath string // --inventory

	// Option flags (global)
	executeMode bool
	assumeYes   bool
	verbose     bool
	jsonOutput  bool

	// Global state
	userSettings *settings.Settings
	loader       *spec.Loader
	auditLogger  audit.Logger = audit.NopLogger{}

	// Shared mapper cache: one resolved mapper per (family, version)
	// across all commands in a run.
	mappers = vyos.NewRegistry()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "vygate",
	Short:             "VyOS Configuration Gateway",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Vygate compiles configuration intents into version-correct VyOS
commands and applies them as atomic batches over the HTTP API.

Write commands preview the compiled batch by default — use -x to execute.

  vygate -d <device> <family> <verb> [args] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		if deviceName == "" {
			deviceName = userSettings.DefaultDevice
		}
		if inventoryPath == "" {
			inventoryPath = userSettings.GetInventoryPath()
		}

		// Quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		loader = spec.NewLoader(inventoryPath)
		if err := loader.Load(); err != nil {
			return fmt.Errorf("loading inventory: %w", err)
		}

		if path := userSettings.AuditLog; path != "" {
			fileLogger, err := audit.NewFileLogger(path, audit.RotationConfig{
				MaxSize:    10 * 1024 * 1024, // 10MB
				MaxBackups: 10,
			})
			if err != nil {
				util.Warnf("Could not initialize audit logging: %v", err)
			} else {
				auditLogger = fileLogger
			}
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "Device name (object selector)")
	rootCmd.PersistentFlags().StringVar(&inventoryPath, "inventory", "", "Device inventory file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "config", Title: "Configuration Families:"},
		&cobra.Group{ID: "query", Title: "Device Queries:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{firewallCmd, natCmd, dhcpCmd, policyCmd} {
		cmd.GroupID = "config"
		addWriteFlags(cmd)
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{showCmd} {
		cmd.GroupID = "query"
		addOutputFlags(cmd)
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{settingsCmd, auditCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("vygate dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("vygate %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}

// ============================================================================
// Context Helpers
// ============================================================================

// requireProfile resolves the -d device to its inventory profile. A missing
// API key is prompted for interactively so keys can stay out of files.
func requireProfile() (*spec.DeviceProfile, error) {
	if deviceName == "" {
		return nil, fmt.Errorf("device required: use -d <device> flag")
	}
	profile, err := loader.Profile(deviceName)
	if err != nil {
		return nil, err
	}
	if profile.APIKey == "" {
		key, err := cli.PromptSecret(fmt.Sprintf("API key for %s", profile.Name))
		if err != nil {
			return nil, fmt.Errorf("no API key for %s: %w", profile.Name, err)
		}
		profile.APIKey = key
	}
	return profile, nil
}

// connectSession opens a device client and wraps it in a session. The caller
// must invoke the returned close function.
func connectSession(profile *spec.DeviceProfile) (*device.Session, func(), error) {
	client, err := device.NewClient(profile)
	if err != nil {
		return nil, nil, err
	}
	sess := device.NewSession(client, nil).WithAudit(auditLogger, currentUser())
	return sess, func() { client.Close() }, nil
}

func currentUser() string {
	if u := os.Getenv("SUDO_USER"); u != "" {
		return u
	}
	return os.Getenv("USER")
}

// ============================================================================
// Batch Helpers
// ============================================================================

// buildError renders compile-stage failures uniformly. Capability errors
// carry enough context to be shown as-is.
func buildError(err error) error {
	return fmt.Errorf("compiling batch: %w", err)
}

// runBatch is the standard post-compile flow for all write commands: print
// the compiled batch, then either stop (dry-run) or commit it.
func runBatch(profile *spec.DeviceProfile, b *vyos.Batch) error {
	if b.IsEmpty() {
		fmt.Println("Nothing to do.")
		return nil
	}

	fmt.Printf("Compiled for %s (%s):\n", profile.Name, b.Version())
	for _, line := range b.Preview() {
		fmt.Println("  " + line)
	}

	if !executeMode {
		fmt.Println("\n" + cli.Yellow("DRY-RUN: No changes applied. Use -x to execute."))
		return nil
	}

	if !assumeYes && !cli.Confirm(fmt.Sprintf("Apply %d instructions to %s?", b.Len(), profile.Name)) {
		fmt.Println("Aborted.")
		return nil
	}

	sess, closeSession, err := connectSession(profile)
	if err != nil {
		return err
	}
	defer closeSession()

	res, err := sess.Commit(context.Background(), b)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s %d instructions applied in %s.\n",
		cli.Green("Committed:"), res.Applied, res.Duration.Round(time.Millisecond))
	return nil
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings,
// help, or version command.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

// addWriteFlags registers -x/--execute and -y/--yes as persistent flags so
// family subcommands inherit them.
func addWriteFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&executeMode, "execute", "x", false, "Execute changes (default is dry-run)")
	cmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt when executing")
}

// addOutputFlags registers --json as a persistent flag.
func addOutputFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "JSON output")
}
