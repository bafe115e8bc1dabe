package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gamgmt/internal/archive"
	"gamgmt/internal/config"
)

func openArchive() *archive.Store {
	appConfig, err := config.LoadEffectiveConfig()
	if err != nil {
		fatalf("Failed to load configuration: %v", err)
	}

	store, err := archive.Open(appConfig.Archive.Path)
	if err != nil {
		fatalf("Failed to open archive: %v", err)
	}
	return store
}

func historyListCmdHandler(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	store := openArchive()
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		fatalf("Failed to list runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("❌ No archived runs found")
		fmt.Println("💡 Enable archiving with 'gamgmt config archive on' or run 'gamgmt --archive'")
		return
	}

	fmt.Printf("🗄️  Archived runs (%s):\n", store.Path())
	fmt.Println()
	for _, run := range runs {
		fmt.Printf("%s %s  %s\n", statusIcon(run.Status), run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
		if run.PresetName != "" {
			fmt.Printf("     🎯 Preset: %s\n", run.PresetName)
		}
		fmt.Printf("     📦 Snapshots: %d\n", run.SnapshotCount)
		if run.Error != "" {
			fmt.Printf("     ❗ %s\n", run.Error)
		}
	}
}

func historyShowCmdHandler(cmd *cobra.Command, args []string) {
	showPayload, _ := cmd.Flags().GetBool("payload")

	store := openArchive()
	defer store.Close()

	run, err := store.GetRun(cmd.Context(), args[0])
	if err != nil {
		fatalf("%v", err)
	}

	snapshots, err := store.Snapshots(cmd.Context(), run.ID)
	if err != nil {
		fatalf("Failed to load snapshots: %v", err)
	}

	fmt.Printf("%s Run %s (%s)\n", statusIcon(run.Status), run.ID, run.Status)
	fmt.Printf("📅 Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if run.FinishedAt != nil {
		fmt.Printf("🏁 Finished: %s (%s)\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	if run.PresetName != "" {
		fmt.Printf("🎯 Preset: %s\n", run.PresetName)
	}
	if run.Error != "" {
		fmt.Printf("❗ Error: %s\n", run.Error)
	}
	fmt.Println()

	for _, snap := range snapshots {
		fmt.Printf("%2d. %-14s %3d item(s)%s\n", snap.Seq, snap.Collection, snap.ItemCount, scopeSuffix(snap.Scope))
		if showPayload {
			fmt.Printf("    %s\n", snap.Payload)
		}
	}
}

func historyCleanupCmdHandler(cmd *cobra.Command, args []string) {
	olderThan, _ := cmd.Flags().GetDuration("older-than")
	if olderThan <= 0 {
		fatalf("--older-than must be positive")
	}

	store := openArchive()
	defer store.Close()

	deleted, err := store.CleanupOlderThan(cmd.Context(), time.Now().Add(-olderThan))
	if err != nil {
		fatalf("Failed to clean up archive: %v", err)
	}

	fmt.Printf("🧹 Deleted %d run(s) older than %s\n", deleted, olderThan)
}

func statusIcon(status string) string {
	switch status {
	case archive.StatusSucceeded:
		return "✅"
	case archive.StatusFailed:
		return "❌"
	default:
		return "⏳"
	}
}

func scopeSuffix(scope archive.Scope) string {
	switch {
	case scope.ProfileID != "":
		return fmt.Sprintf("  [%s / %s / %s]", scope.AccountID, scope.WebPropertyID, scope.ProfileID)
	case scope.WebPropertyID != "":
		return fmt.Sprintf("  [%s / %s]", scope.AccountID, scope.WebPropertyID)
	case scope.AccountID != "":
		return fmt.Sprintf("  [%s]", scope.AccountID)
	default:
		return ""
	}
}
