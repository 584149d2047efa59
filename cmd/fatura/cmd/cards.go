package cmd

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/nfrund/fatura/internal/app"
	"github.com/nfrund/fatura/internal/invoiceapi"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the credit cards known to the invoice API",
	Args:  cobra.NoArgs,
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

		cards, err := client.ListCreditCards(cmd.Context())
		if err != nil {
			return fmt.Errorf("list credit cards: %w", err)
		}
		if len(cards) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Não existe nenhum cartão cadastrado")
			return nil
		}
		for _, card := range cards {
			fmt.Fprintln(cmd.OutOrStdout(), card.Number)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardsCmd)
}
