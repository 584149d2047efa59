package app

import (
	"github.com/nfrund/fatura/internal/catalog"
	"github.com/nfrund/fatura/internal/config"
	"github.com/nfrund/fatura/internal/invoiceview"
	"github.com/nfrund/fatura/internal/modules/invoices"
	"github.com/nfrund/fatura/internal/rendering"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the injector to wire up the modules.
type Dependencies struct {
	Config   config.Provider
	Renderer rendering.Renderer
	Catalog  *catalog.Catalog
	Views    *invoiceview.Manager
}

// invoicesDeps creates the dependency struct for the invoices module.
func invoicesDeps(deps Dependencies) invoices.Dependencies {
	return invoices.Dependencies{
		Cards:      deps.Catalog,
		Views:      deps.Views,
		Renderer:   deps.Renderer,
		SelectWait: deps.Config.GetSelectWait(),
	}
}
