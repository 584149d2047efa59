package invoices

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/fatura/internal/middleware"
	"github.com/nfrund/fatura/internal/module"
	"github.com/nfrund/fatura/internal/rendering"
)

// InvoicesModule serves the invoice page and the endpoints of its views.
type InvoicesModule struct {
	module.BaseModule
	deps Dependencies
}

// Dependencies holds all the services that the module requires.
type Dependencies struct {
	Cards    CardLister
	Views    ViewStore
	Renderer rendering.Renderer
	// SelectWait bounds how long page and selection requests wait for the
	// first invoices of the selected card.
	SelectWait time.Duration
	// SelectionRate is the per-client limit of selection posts per second.
	SelectionRate float64
}

// New creates a new instance of the module.
func New(deps Dependencies) *InvoicesModule {
	if deps.SelectionRate <= 0 {
		deps.SelectionRate = middleware.DefaultSelectionRate
	}
	return &InvoicesModule{deps: deps}
}

// Name returns the module's unique identifier.
func (m *InvoicesModule) Name() string {
	return "invoices"
}

// Boot sets up the page and view routes.
func (m *InvoicesModule) Boot(ctx context.Context, g *echo.Group) error {
	slog.Info("Booting InvoicesModule: Setting up routes...")

	h := NewHandler(m.deps.Cards, m.deps.Views, m.deps.Renderer, m.deps.SelectWait)

	g.GET("/", h.Page)
	views := g.Group("/views/:id")
	views.GET("/invoices", h.Fragment)
	views.POST("/selection", h.Select, middleware.RateLimiter(m.deps.SelectionRate))
	views.DELETE("", h.Unmount)
	return nil
}

// Shutdown unmounts every view, stopping their polling.
func (m *InvoicesModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down InvoicesModule")
	return m.deps.Views.Shutdown(ctx)
}
