package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/fatura/web/src/templates/layouts"
)

const (
	// NoCardsMessage is shown when the API knows no card.
	NoCardsMessage = "Não existe nenhum cartão cadastrado"

	// NoCardsTitle is the page title when the API knows no card.
	NoCardsTitle = "Nenhum cartão encontrado"
)

// NoCardsPage is rendered when the card list is empty. No view is mounted for
// it, so it has neither dropdown nor list.
func NoCardsPage() g.Node {
	return layouts.Base(NoCardsTitle,
		Main(
			ID("app"),
			H1(g.Text(Heading)),
			P(Class("empty"), g.Text(NoCardsMessage)),
		),
	)
}
