package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamgmt/internal/api"
	"gamgmt/internal/archive"
	"gamgmt/internal/config"
	"gamgmt/internal/logging"
	"gamgmt/internal/management"
	"gamgmt/internal/preset"
	"gamgmt/internal/report"
)

func traverseCmdHandler(cmd *cobra.Command, args []string) error {
	logger := logging.L()
	presetFlag, _ := cmd.Flags().GetString("preset")
	forceArchive, _ := cmd.Flags().GetBool("archive")

	cfg, err := config.LoadEffectiveConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return fmt.Errorf("OAuth client credentials not configured - run 'gamgmt config set' or 'gamgmt config import' first")
	}

	refreshToken, presetName, err := resolveRefreshToken(cfg, presetFlag)
	if err != nil {
		return err
	}

	authClient, err := api.NewAuthClient(cfg.ClientID, cfg.ClientSecret, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to create auth client: %w", err)
	}

	var service management.Service = api.NewManagementClient(authClient, cfg.APIBaseURL)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	logger.Debug("starting traversal",
		zap.String("preset", presetName),
		zap.String("base_url", cfg.APIBaseURL),
		zap.Duration("timeout", cfg.Timeout))

	finish := func(error) {}
	if cfg.Archive.Enabled || forceArchive {
		service, finish = startArchive(ctx, service, cfg.Archive.Path, presetName, logger)
	}

	walkErr := report.NewWalker(service, report.NewPrinter(cmd.OutOrStdout()), logger).Traverse(ctx)
	finish(walkErr)

	return reportOutcome(cmd.OutOrStdout(), walkErr, logger)
}

// resolveRefreshToken picks the refresh token for this run: an explicit
// --preset wins, then GAMGMT_REFRESH_TOKEN, then the active preset.
func resolveRefreshToken(cfg *config.AppConfig, presetFlag string) (token, presetName string, err error) {
	if presetFlag == "" && cfg.RefreshToken != "" {
		return cfg.RefreshToken, "", nil
	}

	p, err := preset.Resolve(presetFlag)
	if err != nil {
		return "", "", err
	}
	return p.RefreshToken, p.Name, nil
}

// reportOutcome turns a walk error into the run's result. The three
// classified failures print their diagnostic on out and end the run
// normally; anything else is returned.
func reportOutcome(out io.Writer, walkErr error, logger *zap.Logger) error {
	if walkErr == nil {
		return nil
	}

	message, ok := management.Diagnostic(walkErr)
	if !ok {
		return walkErr
	}

	kind, _ := management.KindOf(walkErr)
	logger.Debug("traversal stopped", zap.Stringer("kind", kind), zap.Error(walkErr))

	if _, err := fmt.Fprintln(out, message); err != nil {
		return err
	}
	return nil
}

// startArchive wraps service so the run is recorded. If the archive cannot be
// opened the traversal goes ahead unrecorded.
func startArchive(ctx context.Context, service management.Service, path, presetName string, logger *zap.Logger) (management.Service, func(error)) {
	noop := func(error) {}

	store, err := archive.Open(path)
	if err != nil {
		logger.Warn("archive unavailable, run will not be recorded", zap.String("path", path), zap.Error(err))
		return service, noop
	}

	runID, err := store.StartRun(ctx, presetName)
	if err != nil {
		logger.Warn("failed to start archive run", zap.Error(err))
		store.Close()
		return service, noop
	}
	logger.Info("archiving run", zap.String("run_id", runID), zap.String("path", path))

	finish := func(walkErr error) {
		// ctx may have hit its deadline already
		if err := store.FinishRun(context.Background(), runID, walkErr); err != nil {
			logger.Warn("failed to finish archive run", zap.String("run_id", runID), zap.Error(err))
		}
		if err := store.Close(); err != nil {
			logger.Warn("failed to close archive", zap.Error(err))
		}
	}

	return archive.NewRecordingService(service, store, runID, logger), finish
}
