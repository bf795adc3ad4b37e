package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/l10nsync/pkg/cli/config"
	"github.com/m-mizutani/l10nsync/pkg/controller/server"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/infra"
	"github.com/m-mizutani/l10nsync/pkg/usecase"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr         string
		webhookToken string

		crowdin config.Crowdin
		sentry  config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("L10NSYNC_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "webhook-token",
			Usage:       "Shared token required in the X-L10nsync-Token header of webhook requests",
			Sources:     cli.EnvVars("L10NSYNC_WEBHOOK_TOKEN"),
			Destination: &webhookToken,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode, sync translations on Crowdin webhook",
		Flags: slice.Flatten(
			serveFlags,
			crowdin.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := crowdin.LoadFile(c.IsSet); err != nil {
				return err
			}

			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("WebhookToken", types.WebhookToken(webhookToken)),
				slog.Any("Crowdin", &crowdin),
				slog.Any("Sentry", &sentry),
			)

			// Same skip conditions as sync; the server is not started
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
			s := server.New(uc, input,
				server.WithWebhookToken(types.WebhookToken(webhookToken)),
				server.WithMetricsHandler(clients.Metrics().Handler()),
			)
			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
