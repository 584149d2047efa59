package invoices

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/fatura/internal/domain"
	"github.com/nfrund/fatura/internal/handlers"
	"github.com/nfrund/fatura/internal/invoiceview"
	"github.com/nfrund/fatura/internal/middleware"
	"github.com/nfrund/fatura/internal/rendering"
	"github.com/nfrund/fatura/web/src/templates/pages"
)

// CardLister provides the card list the page is built from.
type CardLister interface {
	Cards(ctx context.Context) ([]domain.CreditCard, error)
}

// ViewStore mounts and looks up invoice views.
type ViewStore interface {
	Mount(cards []domain.CreditCard) (*invoiceview.View, error)
	Get(id string) (*invoiceview.View, error)
	Unmount(id string)
	Shutdown(ctx context.Context) error
}

// Handler manages the HTTP requests of the invoice page.
type Handler struct {
	cards      CardLister
	views      ViewStore
	renderer   rendering.Renderer
	selectWait time.Duration
}

// NewHandler creates a new handler.
func NewHandler(cards CardLister, views ViewStore, renderer rendering.Renderer, selectWait time.Duration) *Handler {
	return &Handler{
		cards:      cards,
		views:      views,
		renderer:   renderer,
		selectWait: selectWait,
	}
}

// Page renders the invoice page. Each page load mounts its own view with the
// first card selected.
func (h *Handler) Page(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	cards, err := h.cards.Cards(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Info("Card list not found, answering not found", "error", err)
		return h.renderer.RenderPage(c, http.StatusNotFound, pages.NotFoundPage())
	case err != nil:
		return fmt.Errorf("load cards: %w", err)
	}

	noStore(c)
	if len(cards) == 0 {
		return h.renderer.RenderPage(c, http.StatusOK, pages.NoCardsPage())
	}

	v, err := h.views.Mount(cards)
	if err != nil {
		return fmt.Errorf("mount view: %w", err)
	}
	logger.Debug("Invoice page mounted a view", "view_id", v.ID(), "cards", len(cards))

	return h.renderer.RenderPage(c, http.StatusOK, pages.InvoicesPage(h.wait(ctx, v)))
}

// Fragment renders the current invoice list of a view and renews its lease.
func (h *Handler) Fragment(c echo.Context) error {
	var req handlers.ViewRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	v, err := h.lookup(c, req.ViewID)
	if err != nil {
		return err
	}

	noStore(c)
	return h.renderer.RenderPage(c, http.StatusOK, pages.InvoiceList(v.Snapshot()))
}

// Select changes the selected card of a view and answers with the invoice
// list of the new card once its first fetch settled, or when the wait bound
// is reached.
func (h *Handler) Select(c echo.Context) error {
	var req handlers.SelectCardRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	v, err := h.lookup(c, req.ViewID)
	if err != nil {
		return err
	}

	if err := v.SelectCard(req.Card); err != nil {
		if errors.Is(err, domain.ErrUnknownCard) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown card").SetInternal(err)
		}
		return err
	}

	noStore(c)
	return h.renderer.RenderPage(c, http.StatusOK, pages.InvoiceList(h.wait(c.Request().Context(), v)))
}

// Unmount stops a view. Unknown views are ignored.
func (h *Handler) Unmount(c echo.Context) error {
	var req handlers.ViewRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	h.views.Unmount(req.ViewID)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// lookup returns the view with id. A view that is gone makes htmx reload the
// page, which mounts a fresh one.
func (h *Handler) lookup(c echo.Context, id string) (*invoiceview.View, error) {
	v, err := h.views.Get(id)
	if errors.Is(err, domain.ErrViewNotFound) {
		c.Response().Header().Set("HX-Refresh", "true")
		return nil, echo.NewHTTPError(http.StatusNotFound, "view not found").SetInternal(err)
	}
	return v, err
}

func (h *Handler) wait(ctx context.Context, v *invoiceview.View) invoiceview.Snapshot {
	if h.selectWait <= 0 {
		return v.Snapshot()
	}
	ctx, cancel := context.WithTimeout(ctx, h.selectWait)
	defer cancel()
	return v.Wait(ctx)
}

func noStore(c echo.Context) {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
}
