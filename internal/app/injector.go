// Package app wires the application's services together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/nfrund/fatura/internal/catalog"
	"github.com/nfrund/fatura/internal/config"
	"github.com/nfrund/fatura/internal/invoiceapi"
	"github.com/nfrund/fatura/internal/invoiceview"
	"github.com/nfrund/fatura/internal/rendering"
	"github.com/nfrund/fatura/internal/server"
	"github.com/nfrund/fatura/internal/storage"
)

// NewInjector registers every service built from cfg. Services are created
// lazily on first invocation; shutting the injector down stops the ones that
// hold goroutines.
func NewInjector(cfg config.Provider) *do.RootScope {
	i := do.New()

	do.ProvideValue[config.Provider](i, cfg)
	do.Provide(i, provideClient)
	do.Provide(i, provideCatalog)
	do.Provide(i, provideViews)
	do.Provide(i, provideRenderer)
	do.Provide(i, provideServer)

	return i
}

func provideClient(i do.Injector) (*invoiceapi.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return invoiceapi.NewClient(cfg.GetInvoiceAPIURL(),
		invoiceapi.WithTimeout(cfg.GetInvoiceAPITimeout()))
}

func provideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[config.Provider](i)
	client, err := do.Invoke[*invoiceapi.Client](i)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{catalog.WithRevalidate(cfg.GetRevalidateInterval())}
	if path := cfg.GetCatalogSnapshotPath(); path != "" {
		opts = append(opts, catalog.WithSnapshots(catalog.NewSnapshotter(storage.NewOSStore(), path)))
	}
	cat := catalog.New(client, opts...)

	if err := cat.LoadSnapshot(context.Background()); err != nil {
		// A broken snapshot only costs the first request a synchronous fetch.
		slog.Warn("Failed to restore card list snapshot", "error", err)
	}
	return cat, nil
}

func provideViews(i do.Injector) (*invoiceview.Manager, error) {
	cfg := do.MustInvoke[config.Provider](i)
	client, err := do.Invoke[*invoiceapi.Client](i)
	if err != nil {
		return nil, err
	}
	return invoiceview.NewManager(client,
		invoiceview.WithPollInterval(cfg.GetPollInterval()),
		invoiceview.WithIdleTimeout(cfg.GetViewIdleTimeout()),
	), nil
}

func provideRenderer(i do.Injector) (*rendering.UniversalRenderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

func provideServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[config.Provider](i)
	renderer := do.MustInvoke[*rendering.UniversalRenderer](i)

	cat, err := do.Invoke[*catalog.Catalog](i)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	views, err := do.Invoke[*invoiceview.Manager](i)
	if err != nil {
		return nil, fmt.Errorf("view manager: %w", err)
	}

	modules := NewModules(Dependencies{
		Config:   cfg,
		Renderer: renderer,
		Catalog:  cat,
		Views:    views,
	})

	return server.New(server.Dependencies{
		Config:   cfg,
		Renderer: renderer,
		Modules:  modules,
	}), nil
}
