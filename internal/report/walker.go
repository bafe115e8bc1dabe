package report

import (
	"context"

	"go.uber.org/zap"

	"gamgmt/internal/management"
)

// Walker prints the account hierarchy followed by the user's segments.
// Only the first item of each level is descended into.
type Walker struct {
	service management.Service
	printer *Printer
	logger  *zap.Logger
}

// NewWalker creates a walker reading from service and writing to printer
func NewWalker(service management.Service, printer *Printer, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		service: service,
		printer: printer,
		logger:  logger,
	}
}

// Traverse walks accounts, web properties, profiles and goals, then lists
// segments. The first service error stops the walk and is returned as is.
func (w *Walker) Traverse(ctx context.Context) error {
	if err := w.walkHierarchy(ctx); err != nil {
		return err
	}

	w.logger.Debug("listing segments")
	segments, err := w.service.ListSegments(ctx)
	if err != nil {
		return err
	}
	w.logger.Debug("listed segments", zap.Int("items", segments.Len()))
	w.printer.PrintSegments(segments)

	return w.printer.Err()
}

func (w *Walker) walkHierarchy(ctx context.Context) error {
	w.logger.Debug("listing accounts")
	accounts, err := w.service.ListAccounts(ctx)
	if err != nil {
		return err
	}
	w.logger.Debug("listed accounts", zap.Int("items", accounts.Len()))
	w.printer.PrintAccounts(accounts)

	account, ok := accounts.First()
	if !ok {
		return nil
	}
	accountID := management.Value(account.ID)

	w.logger.Debug("listing web properties", zap.String("account_id", accountID))
	webProperties, err := w.service.ListWebProperties(ctx, accountID)
	if err != nil {
		return err
	}
	w.logger.Debug("listed web properties", zap.Int("items", webProperties.Len()))
	w.printer.PrintWebProperties(webProperties)

	webProperty, ok := webProperties.First()
	if !ok {
		return nil
	}
	webPropertyID := management.Value(webProperty.ID)

	w.logger.Debug("listing profiles",
		zap.String("account_id", accountID),
		zap.String("web_property_id", webPropertyID))
	profiles, err := w.service.ListProfiles(ctx, accountID, webPropertyID)
	if err != nil {
		return err
	}
	w.logger.Debug("listed profiles", zap.Int("items", profiles.Len()))
	w.printer.PrintProfiles(profiles)

	profile, ok := profiles.First()
	if !ok {
		return nil
	}
	profileID := management.Value(profile.ID)

	w.logger.Debug("listing goals",
		zap.String("account_id", accountID),
		zap.String("web_property_id", webPropertyID),
		zap.String("profile_id", profileID))
	goals, err := w.service.ListGoals(ctx, accountID, webPropertyID, profileID)
	if err != nil {
		return err
	}
	w.logger.Debug("listed goals", zap.Int("items", goals.Len()))
	w.printer.PrintGoals(goals)

	return nil
}
