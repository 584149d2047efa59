package invoiceapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nfrund/fatura/internal/domain"
)

const (
	creditCardsPath = "credit-cards"
	invoicesPath    = "credit-cards/%s/invoices"

	// maxErrorBody bounds how much of a failed response is kept for the error.
	maxErrorBody = 512
)

// Client talks to the invoice API. It is a read-only consumer.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout, which is the
// default: a hung request is superseded by the next poll instead.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse invoice api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invoice api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListCreditCards fetches every known card, in API order. A 404 is reported as
// an error matching domain.ErrNotFound.
func (c *Client) ListCreditCards(ctx context.Context) ([]domain.CreditCard, error) {
	var cards []domain.CreditCard
	if err := c.getJSON(ctx, creditCardsPath, &cards); err != nil {
		return nil, fmt.Errorf("list credit cards: %w", err)
	}
	if cards == nil {
		cards = []domain.CreditCard{}
	}
	return cards, nil
}

// ListInvoices fetches the invoices of one card, in API order.
func (c *Client) ListInvoices(ctx context.Context, number string) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	path := fmt.Sprintf(invoicesPath, url.PathEscape(number))
	if err := c.getJSON(ctx, path, &invoices); err != nil {
		return nil, fmt.Errorf("list invoices for card %s: %w", number, err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}

// endpoint joins the base url and a relative path with exactly one slash
// between them.
func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	endpoint := c.endpoint(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
