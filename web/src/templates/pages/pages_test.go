package pages

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/nfrund/fatura/internal/domain"
	"github.com/nfrund/fatura/internal/invoiceview"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func snapshot() invoiceview.Snapshot {
	return invoiceview.Snapshot{
		ID:       "0b7c8a3e-0000-4000-8000-000000000001",
		Cards:    []domain.CreditCard{{Number: "1111"}, {Number: "2222"}},
		Selected: "1111",
		Loaded:   true,
		Invoices: []domain.Invoice{{
			ID:          "1",
			PaymentDate: "2023-01-10",
			Store:       "Market",
			Amount:      decimal.RequireFromString("42.50"),
		}},
	}
}

func TestInvoicesPage(t *testing.T) {
	out := render(t, InvoicesPage(snapshot()))

	assert.Contains(t, out, "<title>Fatura - #1111</title>")
	assert.Contains(t, out, "<h1>Fatura</h1>")
	assert.Contains(t, out, `data-view-id="0b7c8a3e-0000-4000-8000-000000000001"`)

	// Dropdown in fetch order with the first card selected.
	assert.Contains(t, out, `hx-post="/views/0b7c8a3e-0000-4000-8000-000000000001/selection"`)
	assert.Contains(t, out, `<option value="1111" selected>1111</option>`)
	assert.Contains(t, out, `<option value="2222">2222</option>`)
	assert.Less(t, strings.Index(out, `value="1111"`), strings.Index(out, `value="2222"`))

	// The list polls the view.
	assert.Contains(t, out, `hx-get="/views/0b7c8a3e-0000-4000-8000-000000000001/invoices"`)
	assert.Contains(t, out, `hx-trigger="every 5s"`)

	// Selections and polls share one request queue on the panel.
	assert.Contains(t, out, `hx-sync="#invoice-panel:replace"`)

	// The row.
	assert.Contains(t, out, `<span class="date">10/01/2023</span>`)
	assert.Contains(t, out, `<span class="store">Market</span>`)
	assert.Contains(t, out, `<span class="amount">R$ 42.5</span>`)
}

func TestPollTrigger(t *testing.T) {
	assert.Equal(t, "every 5s", PollTrigger(0))
	assert.Equal(t, "every 5s", PollTrigger(5*time.Second))
	assert.Equal(t, "every 30s", PollTrigger(30*time.Second))
	assert.Equal(t, "every 1500ms", PollTrigger(1500*time.Millisecond))
}

func TestInvoicesPage_FollowsViewPollInterval(t *testing.T) {
	snap := snapshot()
	snap.PollInterval = 2 * time.Second

	out := render(t, InvoicesPage(snap))
	assert.Contains(t, out, `hx-trigger="every 2s"`)
	assert.NotContains(t, out, `hx-trigger="every 5s"`)
}

func TestInvoiceList_KeepsAPIOrder(t *testing.T) {
	snap := snapshot()
	snap.Invoices = []domain.Invoice{
		{ID: "9", PaymentDate: "2023-03-15T00:00:00Z", Store: "Zebra", Amount: decimal.NewFromInt(1)},
		{ID: "2", PaymentDate: "2023-01-01", Store: "Alpha", Amount: decimal.NewFromInt(2)},
	}

	out := render(t, InvoiceList(snap))
	assert.Contains(t, out, "<title>Fatura - #1111</title>")
	assert.Contains(t, out, `<ol id="invoices" data-card="1111">`)
	assert.Contains(t, out, "15/03/2023")
	assert.Less(t, strings.Index(out, "Zebra"), strings.Index(out, "Alpha"))
}

func TestInvoiceList_BeforeFirstFetch(t *testing.T) {
	snap := snapshot()
	snap.Loaded = false
	snap.Invoices = nil

	out := render(t, InvoiceList(snap))
	assert.Contains(t, out, `<ol id="invoices" data-card="1111" aria-busy="true"></ol>`)
}

func TestInvoiceList_EscapesStore(t *testing.T) {
	snap := snapshot()
	snap.Invoices[0].Store = "<script>alert(1)</script>"

	out := render(t, InvoiceList(snap))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestNoCardsPage(t *testing.T) {
	out := render(t, NoCardsPage())

	assert.Contains(t, out, "<title>Fatura - Nenhum cartão encontrado</title>")
	assert.Contains(t, out, "Não existe nenhum cartão cadastrado")
	assert.NotContains(t, out, "<select")
	assert.NotContains(t, out, "<ol")
}

func TestNotFoundPage(t *testing.T) {
	out := render(t, NotFoundPage())

	assert.Contains(t, out, "<title>Fatura - Página não encontrada</title>")
	assert.Contains(t, out, "<h1>404</h1>")
	assert.NotContains(t, out, "<select")
}
