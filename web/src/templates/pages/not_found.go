package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	"github.com/nfrund/fatura/internal/view"
	"github.com/nfrund/fatura/web/src/templates/layouts"
)

// NotFoundTitle is the title of the not-found page.
const NotFoundTitle = "Página não encontrada"

// NotFoundContent is the body of the not-found page.
func NotFoundContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<main id="app"><h1>404</h1><p>`+
			templ.EscapeString(NotFoundTitle)+`</p></main>`)
		return err
	})
}

// NotFoundPage is the page answered with 404 when the API has no card list,
// or when a route does not exist.
func NotFoundPage() g.Node {
	return layouts.Base(NotFoundTitle, view.AdaptTemplToGomponent(NotFoundContent()))
}
