package cmd

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/fatura/internal/testutils"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCardsCommand(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	api.SetCards("1111", "2222")
	t.Setenv("INVOICE_API_URL", api.URL())

	out, err := run(t, "cards")
	require.NoError(t, err)
	assert.Equal(t, "1111\n2222\n", out)
}

func TestCardsCommand_Empty(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	t.Setenv("INVOICE_API_URL", api.URL())

	out, err := run(t, "cards")
	require.NoError(t, err)
	assert.Contains(t, out, "Não existe nenhum cartão cadastrado")
}

func TestInvoicesCommand(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	api.SetInvoices("1111", `[{"id":1,"payment_date":"2023-01-10","store":"Market","amount":42.50}]`)
	t.Setenv("INVOICE_API_URL", api.URL())

	out, err := run(t, "invoices", "1111")
	require.NoError(t, err)
	assert.Contains(t, out, "10/01/2023")
	assert.Contains(t, out, "Market")
	assert.Contains(t, out, "R$ 42.5")
}

func TestInvoicesCommand_RequiresCard(t *testing.T) {
	t.Setenv("INVOICE_API_URL", "http://localhost")

	_, err := run(t, "invoices")
	assert.Error(t, err)
}

func TestCommands_RequireAPIURL(t *testing.T) {
	t.Setenv("INVOICE_API_URL", "")

	_, err := run(t, "cards")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvoiceAPIURL")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fatura v"+version+"\n", out)
}
