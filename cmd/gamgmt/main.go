package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gamgmt/internal/logging"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "gamgmt",
		Short: "Google Analytics Management API explorer",
		Long: `gamgmt walks the Google Analytics Management API for the authorised user and
prints the first account, web property, profile and its goals, followed by
every segment the user can access.

Examples:
  gamgmt config set --client-id <id> --client-secret <secret>
  gamgmt preset create work --refresh-token <token>
  gamgmt preset use work
  gamgmt
  gamgmt traverse --preset personal --archive
  gamgmt history list`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          traverseCmdHandler,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.SetVerbose(verbose)
		},
	}

	traverseCmd = &cobra.Command{
		Use:   "traverse",
		Short: "Print the account hierarchy and segments",
		Long:  "Walk accounts, web properties, profiles and goals (first item of each level), then list segments",
		Args:  cobra.NoArgs,
		RunE:  traverseCmdHandler,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage global OAuth configuration",
		Long:  "Configure the OAuth client credentials and archive settings shared by all presets",
	}

	presetCmd = &cobra.Command{
		Use:   "preset",
		Short: "Manage account presets",
		Long:  "Create, list, delete, and switch between refresh-token presets",
	}

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Inspect archived traversal runs",
		Long:  "List, show, and clean up traversal runs recorded in the DuckDB archive",
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("preset", "", "Preset to use (overrides active preset)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging on stderr")
	rootCmd.Flags().Bool("archive", false, "Record this run in the archive even if archiving is disabled")
	traverseCmd.Flags().Bool("archive", false, "Record this run in the archive even if archiving is disabled")

	// Config subcommands
	configSetCmd := &cobra.Command{
		Use:   "set",
		Short: "Set global OAuth credentials",
		Long:  "Configure global OAuth client credentials used across all presets",
		Run:   configSetCmdHandler,
	}
	configSetCmd.Flags().String("client-id", "", "Google OAuth client ID (required)")
	configSetCmd.Flags().String("client-secret", "", "Google OAuth client secret (required)")
	configSetCmd.MarkFlagRequired("client-id")
	configSetCmd.MarkFlagRequired("client-secret")

	configImportCmd := &cobra.Command{
		Use:   "import [client_secrets.json]",
		Short: "Import OAuth credentials from a client secrets file",
		Long:  "Read the client ID and secret from a client_secrets.json downloaded from the Google API console",
		Args:  cobra.ExactArgs(1),
		Run:   configImportCmdHandler,
	}

	configArchiveCmd := &cobra.Command{
		Use:       "archive [on|off]",
		Short:     "Enable or disable the run archive",
		Long:      "Record every traversal into a DuckDB archive that 'gamgmt history' can inspect",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		Run:       configArchiveCmdHandler,
	}
	configArchiveCmd.Flags().String("path", "", "Archive database path (default <config dir>/archive.db)")

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current global configuration and active preset",
		Run:   configShowCmdHandler,
	}

	configCmd.AddCommand(configSetCmd, configImportCmd, configArchiveCmd, configShowCmd)

	// Preset subcommands
	presetCreateCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new preset",
		Long:  "Create a new preset holding a refresh token for API access",
		Args:  cobra.ExactArgs(1),
		Run:   presetCreateCmdHandler,
	}
	presetCreateCmd.Flags().String("refresh-token", "", "Google OAuth refresh token (required)")
	presetCreateCmd.Flags().String("user-email", "", "User email for identification (optional)")
	presetCreateCmd.Flags().Bool("no-validate", false, "Skip refresh token validation (advanced users only)")
	presetCreateCmd.MarkFlagRequired("refresh-token")

	presetListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all presets",
		Run:   presetListCmdHandler,
	}

	presetDeleteCmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		Run:   presetDeleteCmdHandler,
	}
	presetDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	presetUseCmd := &cobra.Command{
		Use:   "use [name]",
		Short: "Set active preset",
		Args:  cobra.ExactArgs(1),
		Run:   presetUseCmdHandler,
	}

	presetCmd.AddCommand(presetCreateCmd, presetListCmd, presetDeleteCmd, presetUseCmd)

	// History subcommands
	historyListCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs",
		Run:   historyListCmdHandler,
	}
	historyListCmd.Flags().Int("limit", 20, "Maximum runs to show")

	historyShowCmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the snapshots recorded by a run",
		Args:  cobra.ExactArgs(1),
		Run:   historyShowCmdHandler,
	}
	historyShowCmd.Flags().Bool("payload", false, "Print the archived JSON payload of each snapshot")

	historyCleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete old archived runs",
		Run:   historyCleanupCmdHandler,
	}
	historyCleanupCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete runs started longer ago than this")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyCleanupCmd)

	// Test command (hidden) for OAuth validation
	testCmd := &cobra.Command{
		Use:    "test-auth",
		Short:  "Test OAuth2 authentication",
		Hidden: true,
		Run:    testAuthCmdHandler,
	}

	rootCmd.AddCommand(traverseCmd, configCmd, presetCmd, historyCmd, testCmd)
}

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
