package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/l10nsync/pkg/cli/config"
	"github.com/m-mizutani/l10nsync/pkg/infra"
	"github.com/m-mizutani/l10nsync/pkg/usecase"
	"github.com/m-mizutani/l10nsync/pkg/utils/errutil"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func syncCommand() *cli.Command {
	var (
		crowdin config.Crowdin
		sentry  config.Sentry
	)

	return &cli.Command{
		Name:  "sync",
		Usage: "Export translations on Crowdin and write them to the output once",
		Flags: slice.Flatten(
			crowdin.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := crowdin.LoadFile(c.IsSet); err != nil {
				return err
			}

			logger := logging.From(ctx)
			logger.Debug("starting sync",
				slog.Any("Crowdin", &crowdin),
				slog.Any("Sentry", &sentry),
			)

			if skipSync(ctx, &crowdin) {
				return nil
			}

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			input, err := crowdin.SyncInput()
			if err != nil {
				return err
			}

			clients := infra.New(infra.WithCrowdinEndpoint(crowdin.Endpoint()))
			uc := usecase.New(clients)

			if _, err := uc.SyncTranslations(ctx, input); err != nil {
				errutil.HandleError(ctx, "failed to sync translations", err)
				return err
			}

			return nil
		},
	}
}

// skipSync reports whether Crowdin must not be contacted at all.
func skipSync(ctx context.Context, crowdin *config.Crowdin) bool {
	logger := logging.From(ctx)
	if crowdin.Offline() {
		logger.Info("offline mode, skipping")
		return true
	}
	if !crowdin.HasAPIKey() {
		logger.Info("api key is empty, skipping")
		return true
	}
	return false
}
