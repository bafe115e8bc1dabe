package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamgmt/internal/config"
	"gamgmt/internal/preset"
)

func configSetCmdHandler(cmd *cobra.Command, args []string) {
	clientID, _ := cmd.Flags().GetString("client-id")
	clientSecret, _ := cmd.Flags().GetString("client-secret")

	fmt.Println("🔧 Setting global OAuth configuration...")

	if strings.TrimSpace(clientID) == "" {
		fatalf("client-id cannot be empty")
	}
	if strings.TrimSpace(clientSecret) == "" {
		fatalf("client-secret cannot be empty")
	}

	if err := config.SetClientCredentials(strings.TrimSpace(clientID), strings.TrimSpace(clientSecret)); err != nil {
		fatalf("Failed to save configuration: %v", err)
	}

	configPath, _ := config.GetConfigPath()
	fmt.Println("✅ OAuth credentials saved successfully")
	fmt.Printf("📁 Config file: %s\n", configPath)
	fmt.Println("🚀 You can now create presets with refresh tokens")
}

func configImportCmdHandler(cmd *cobra.Command, args []string) {
	fmt.Printf("📥 Importing OAuth credentials from %s...\n", args[0])

	clientID, err := config.ImportClientSecrets(args[0])
	if err != nil {
		fatalf("Failed to import client secrets: %v", err)
	}

	configPath, _ := config.GetConfigPath()
	fmt.Printf("✅ Imported client %s\n", maskSecret(clientID))
	fmt.Printf("📁 Config file: %s\n", configPath)
}

func configArchiveCmdHandler(cmd *cobra.Command, args []string) {
	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "enable":
		enabled = true
	case "off", "false", "disable":
		enabled = false
	default:
		fatalf("expected 'on' or 'off', got %q", args[0])
	}
	path, _ := cmd.Flags().GetString("path")

	if err := config.SetArchive(enabled, path); err != nil {
		fatalf("Failed to save configuration: %v", err)
	}

	if enabled {
		fmt.Println("✅ Run archive enabled")
		if path != "" {
			fmt.Printf("🗄️  Archive database: %s\n", path)
		}
	} else {
		fmt.Println("✅ Run archive disabled")
	}
}

func configShowCmdHandler(cmd *cobra.Command, args []string) {
	fmt.Println("📋 Current gamgmt Configuration:")
	fmt.Println()

	appConfig, err := config.LoadEffectiveConfig()
	if err != nil {
		fatalf("Failed to load configuration: %v", err)
	}

	configPath, _ := config.GetConfigPath()
	fmt.Printf("📁 Config Location: %s\n", configPath)
	fmt.Println()

	if appConfig.ClientID != "" {
		fmt.Printf("🔑 OAuth Client ID: %s (configured)\n", maskSecret(appConfig.ClientID))
		fmt.Println("🔐 OAuth Client Secret: [HIDDEN] (configured)")
	} else {
		fmt.Println("❌ OAuth Client ID: Not configured")
		fmt.Println("❌ OAuth Client Secret: Not configured")
		fmt.Println()
		fmt.Println("💡 Run 'gamgmt config set --client-id <id> --client-secret <secret>' to configure")
	}

	if appConfig.RefreshToken != "" {
		fmt.Printf("🎟️  Refresh token from %s (overrides active preset)\n", config.EnvRefreshToken)
	}

	if appConfig.ActivePreset != "" {
		fmt.Printf("🎯 Active Preset: %s\n", appConfig.ActivePreset)
		if exists, _ := preset.PresetExists(appConfig.ActivePreset); !exists {
			fmt.Println("⚠️  Active preset file is missing")
		}
	} else {
		fmt.Println("📍 Active Preset: None")
	}

	fmt.Println()
	fmt.Printf("🌐 API Base URL: %s\n", appConfig.APIBaseURL)
	fmt.Printf("⏱️  Timeout: %s\n", appConfig.Timeout)
	if appConfig.Archive.Enabled {
		fmt.Printf("🗄️  Archive: enabled (%s)\n", appConfig.Archive.Path)
	} else {
		fmt.Println("🗄️  Archive: disabled")
	}

	if !appConfig.CreatedAt.IsZero() {
		fmt.Println()
		fmt.Printf("📅 Created: %s\n", appConfig.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("🔄 Updated: %s\n", appConfig.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

// maskSecret keeps the first 12 and last 4 characters of long values
func maskSecret(value string) string {
	if len(value) <= 16 {
		return value
	}
	return value[:12] + "..." + value[len(value)-4:]
}
