package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gamgmt/internal/api"
	"gamgmt/internal/config"
	"gamgmt/internal/preset"
)

func presetCreateCmdHandler(cmd *cobra.Command, args []string) {
	presetName := args[0]
	refreshToken, _ := cmd.Flags().GetString("refresh-token")
	userEmail, _ := cmd.Flags().GetString("user-email")
	noValidate, _ := cmd.Flags().GetBool("no-validate")
	refreshToken = strings.TrimSpace(refreshToken)

	fmt.Printf("➕ Creating preset '%s'...\n", presetName)

	appConfig, err := config.LoadEffectiveConfig()
	if err != nil {
		fatalf("Failed to load configuration: %v", err)
	}

	if !noValidate {
		if appConfig.ClientID == "" || appConfig.ClientSecret == "" {
			fmt.Fprintln(os.Stderr, "Error: OAuth client credentials not configured")
			fmt.Fprintln(os.Stderr, "💡 Run 'gamgmt config set --client-id <id> --client-secret <secret>' first")
			os.Exit(1)
		}

		fmt.Println("🔍 Validating refresh token...")

		authClient, err := api.NewAuthClient(appConfig.ClientID, appConfig.ClientSecret, refreshToken)
		if err != nil {
			fatalf("Failed to create auth client for validation: %v", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := authClient.ValidateRefreshToken(ctx, refreshToken); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Refresh token validation failed: %v\n", err)
			fmt.Fprintln(os.Stderr, "\n💡 Common issues:")
			fmt.Fprintln(os.Stderr, "   - Token has expired or been revoked")
			fmt.Fprintln(os.Stderr, "   - Token was issued for a different OAuth client")
			fmt.Fprintln(os.Stderr, "   - Network connectivity issues")
			fmt.Fprintln(os.Stderr, "\n🔧 To skip validation: add --no-validate flag")
			os.Exit(1)
		}

		fmt.Println("✅ Refresh token is valid!")
	} else {
		fmt.Println("⚠️  Skipping token validation (--no-validate specified)")
	}

	if err := preset.CreatePreset(presetName, refreshToken, userEmail); err != nil {
		fatalf("Failed to create preset: %v", err)
	}

	presetPath, _ := preset.GetPresetPath(presetName)
	fmt.Printf("✅ Preset '%s' created successfully\n", presetName)
	fmt.Printf("📁 Preset file: %s\n", presetPath)
	if userEmail != "" {
		fmt.Printf("👤 User email: %s\n", userEmail)
	}
	fmt.Printf("🚀 You can now use 'gamgmt preset use %s' to activate it\n", presetName)
}

func presetListCmdHandler(cmd *cobra.Command, args []string) {
	fmt.Println("📁 Available Presets:")
	fmt.Println()

	activePresetName, err := config.GetActivePreset()
	if err != nil {
		fatalf("Failed to get active preset: %v", err)
	}

	presets, err := preset.ListPresets()
	if err != nil {
		fatalf("Failed to list presets: %v", err)
	}

	if len(presets) == 0 {
		fmt.Println("❌ No presets found")
		fmt.Println()
		fmt.Println("💡 Create your first preset with:")
		fmt.Println("   gamgmt preset create <name> --refresh-token <token>")
		return
	}

	for _, p := range presets {
		marker := "  "
		if p.Name == activePresetName {
			marker = "🎯"
		}
		fmt.Printf("%s %s\n", marker, p.Name)
		if p.UserEmail != "" {
			fmt.Printf("     👤 %s\n", p.UserEmail)
		}
		fmt.Printf("     📅 Created: %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
		if !p.LastUsed.IsZero() {
			fmt.Printf("     🕐 Last used: %s\n", p.LastUsed.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	fmt.Printf("📊 Total: %d preset(s)\n", len(presets))
}

func presetDeleteCmdHandler(cmd *cobra.Command, args []string) {
	presetName := args[0]
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	exists, err := preset.PresetExists(presetName)
	if err != nil {
		fatalf("Failed to check preset: %v", err)
	}
	if !exists {
		fatalf("Preset '%s' does not exist", presetName)
	}

	if !skipConfirm {
		fmt.Printf("⚠️  Are you sure you want to delete preset '%s'? (y/N): ", presetName)
		var response string
		fmt.Scanln(&response)

		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("❌ Deletion cancelled")
			return
		}
	}

	if err := preset.DeletePreset(presetName); err != nil {
		fatalf("Failed to delete preset: %v", err)
	}

	fmt.Printf("✅ Preset '%s' deleted successfully\n", presetName)
}

func presetUseCmdHandler(cmd *cobra.Command, args []string) {
	presetName := args[0]

	if err := preset.SetActivePreset(presetName); err != nil {
		fatalf("Failed to set active preset: %v", err)
	}

	fmt.Printf("✅ Activated preset '%s'\n", presetName)
	fmt.Println("🚀 Run 'gamgmt' to print the account hierarchy")
}

func testAuthCmdHandler(cmd *cobra.Command, args []string) {
	fmt.Println("🔐 Testing OAuth2 authentication...")

	appConfig, err := config.LoadEffectiveConfig()
	if err != nil {
		fatalf("Failed to load configuration: %v", err)
	}

	presetFlag, _ := cmd.Flags().GetString("preset")
	refreshToken, presetName, err := resolveRefreshToken(appConfig, presetFlag)
	if err != nil {
		fatalf("%v", err)
	}
	if presetName != "" {
		fmt.Printf("🎯 Using preset: %s\n", presetName)
	} else {
		fmt.Printf("🎟️  Using refresh token from %s\n", config.EnvRefreshToken)
	}

	authClient, err := api.NewAuthClient(appConfig.ClientID, appConfig.ClientSecret, refreshToken)
	if err != nil {
		fatalf("Failed to create auth client: %v", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	token, err := authClient.GetAccessToken(ctx)
	if err != nil {
		fatalf("Failed to get access token: %v", err)
	}

	fmt.Println("✅ Successfully obtained access token!")
	fmt.Printf("🔑 Token type: %s\n", token.TokenType)
	fmt.Printf("⏰ Expires: %s\n", token.Expiry.Format("2006-01-02 15:04:05"))

	info := authClient.GetTokenInfo()
	fmt.Printf("💾 Cached: %t (refresh after %s)\n", info.HasCachedToken, info.CacheExpiry.Format("15:04:05"))
}
