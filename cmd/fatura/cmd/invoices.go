package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/nfrund/fatura/internal/app"
	"github.com/nfrund/fatura/internal/invoiceapi"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices <card-number>",
	Short: "Print the invoices of a credit card",
	Long: `Print the invoices of a credit card in the order the API returns them,
one per line: payment date (dd/mm/yyyy), store and amount.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		injector := app.NewInjector(cfg)
		defer injector.Shutdown()

		client, err := do.Invoke[*invoiceapi.Client](injector)
		if err != nil {
			return err
		}

		invoices, err := client.ListInvoices(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("list invoices of %s: %w", args[0], err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, inv := range invoices {
			fmt.Fprintf(w, "%s\t%s\t%s\n", inv.FormattedDate(), inv.Store, inv.FormattedAmount())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
}
