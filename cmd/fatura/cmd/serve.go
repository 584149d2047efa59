package cmd

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/nfrund/fatura/internal/app"
	"github.com/nfrund/fatura/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the web server on SERVER_ADDR (default :3000).

The server stops gracefully on SIGINT or SIGTERM: in-flight requests finish
and every mounted invoice view stops polling.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	injector := app.NewInjector(cfg)
	defer injector.Shutdown()

	srv, err := do.Invoke[*server.Server](injector)
	if err != nil {
		return err
	}

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	if err := srv.RegisterRoutes(ctx); err != nil {
		return err
	}

	slog.Info("Starting fatura", "version", version, "invoice_api", cfg.GetInvoiceAPIURL())
	return srv.Start(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
