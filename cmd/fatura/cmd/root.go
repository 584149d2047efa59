package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nfrund/fatura/internal/config"
	"github.com/nfrund/fatura/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "fatura",
	Short: "Credit card invoice viewer",
	Long: `Fatura serves a page listing the invoices of a credit card, fetched from
the invoice API configured in INVOICE_API_URL.

Running fatura without a command starts the web server.

Use "fatura [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.New()
	},
	RunE: runServe,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration shared by every command.
func loadConfig() (*config.Config, error) {
	return config.New()
}
