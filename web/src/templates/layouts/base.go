package layouts

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// HTMXScript is the htmx build the pages are written against.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// Base is the document shell shared by every full page.
func Base(title string, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("pt-BR"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				g.El("title", g.Text(CalculateTitle(title))),
				h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
				h.Script(h.Src(HTMXScript)),
				h.Script(h.Src("/static/app.js"), h.Defer()),
			),
			h.Body(body...),
		),
	)
}
