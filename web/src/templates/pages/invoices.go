package pages

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/fatura/internal/domain"
	"github.com/nfrund/fatura/internal/invoiceview"
	"github.com/nfrund/fatura/web/src/templates/layouts"
)

// Heading is the page heading.
const Heading = "Fatura"

// PollTrigger refreshes the invoice list in step with the view's own polling.
// A non-positive interval falls back to the view default.
func PollTrigger(interval time.Duration) string {
	if interval <= 0 {
		interval = invoiceview.DefaultPollInterval
	}
	if interval%time.Second == 0 {
		return "every " + strconv.FormatInt(int64(interval/time.Second), 10) + "s"
	}
	return "every " + strconv.FormatInt(interval.Milliseconds(), 10) + "ms"
}

// ViewURL is the resource of a mounted view.
func ViewURL(id string) string {
	return "/views/" + id
}

// InvoicesURL serves the invoice list fragment of a view.
func InvoicesURL(id string) string {
	return ViewURL(id) + "/invoices"
}

// SelectionURL receives card selections for a view.
func SelectionURL(id string) string {
	return ViewURL(id) + "/selection"
}

// InvoiceTitle is the page title while number is selected.
func InvoiceTitle(number string) string {
	return "#" + number
}

// InvoicesPage is the full page of a mounted view: the card dropdown and the
// invoice list of the selected card. The list re-renders itself from the view
// every poll; the dropdown posts selections back to the view.
func InvoicesPage(snap invoiceview.Snapshot) g.Node {
	return layouts.Base(InvoiceTitle(snap.Selected),
		Main(
			ID("app"),
			g.Attr("data-view-id", snap.ID),
			H1(g.Text(Heading)),
			cardSelect(snap),
			Div(
				ID("invoice-panel"),
				hx.Get(InvoicesURL(snap.ID)),
				hx.Trigger(PollTrigger(snap.PollInterval)),
				hx.Swap("innerHTML"),
				InvoiceList(snap),
			),
		),
	)
}

// InvoiceList is the fragment swapped into the invoice panel. It carries a
// title element so htmx keeps the document title on the selected card.
func InvoiceList(snap invoiceview.Snapshot) g.Node {
	return g.Group{
		g.El("title", g.Text(layouts.CalculateTitle(InvoiceTitle(snap.Selected)))),
		Ol(
			ID("invoices"),
			g.Attr("data-card", snap.Selected),
			g.If(!snap.Loaded, g.Attr("aria-busy", "true")),
			g.Map(snap.Invoices, invoiceRow),
		),
	}
}

func invoiceRow(inv domain.Invoice) g.Node {
	return Li(
		g.Attr("data-id", string(inv.ID)),
		Span(Class("date"), g.Text(inv.FormattedDate())),
		Span(Class("store"), g.Text(inv.Store)),
		Span(Class("amount"), g.Text(inv.FormattedAmount())),
	)
}

func cardSelect(snap invoiceview.Snapshot) g.Node {
	return Select(
		ID("card"),
		Name("card"),
		g.Attr("aria-label", "Cartão"),
		hx.Post(SelectionURL(snap.ID)),
		hx.Trigger("change"),
		hx.Target("#invoice-panel"),
		hx.Swap("innerHTML"),
		// A selection aborts a pending list poll, and polls are dropped while
		// the selection is in flight, so an older card's list never lands last.
		g.Attr("hx-sync", "#invoice-panel:replace"),
		g.Map(snap.Cards, func(card domain.CreditCard) g.Node {
			return Option(
				Value(card.Number),
				g.If(card.Number == snap.Selected, Selected()),
				g.Text(card.Number),
			)
		}),
	)
}
