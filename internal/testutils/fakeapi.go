package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nfrund/fatura/internal/domain"
)

// FakeAPI is an in-process stand-in for the invoice API. Tests configure the
// cards and the per-card invoice payloads, and can hold a card's invoice
// requests open to simulate slow responses.
type FakeAPI struct {
	server *httptest.Server

	mu             sync.Mutex
	cards          []domain.CreditCard
	cardsStatus    int
	invoices       map[string]string
	invoiceStatus  map[string]int
	gates          map[string]chan struct{}
	calls          map[string]int
	completed      map[string]int
	cardsCallCount int
}

// NewFakeAPI starts a fake invoice API that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		cards:         []domain.CreditCard{},
		cardsStatus:   http.StatusOK,
		invoices:      make(map[string]string),
		invoiceStatus: make(map[string]int),
		gates:         make(map[string]chan struct{}),
		calls:         make(map[string]int),
		completed:     make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /credit-cards", f.handleCards)
	mux.HandleFunc("GET /credit-cards/{number}/invoices", f.handleInvoices)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.Close)

	return f
}

// URL is the base url of the fake API.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Close releases held requests and shuts the server down.
func (f *FakeAPI) Close() {
	f.mu.Lock()
	for number, gate := range f.gates {
		close(gate)
		delete(f.gates, number)
	}
	f.mu.Unlock()
	f.server.Close()
}

// SetCards replaces the card list.
func (f *FakeAPI) SetCards(numbers ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards = make([]domain.CreditCard, 0, len(numbers))
	for _, n := range numbers {
		f.cards = append(f.cards, domain.CreditCard{Number: n})
	}
}

// SetCardsStatus makes the card list endpoint answer with the given status.
func (f *FakeAPI) SetCardsStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cardsStatus = status
}

// SetInvoices sets the raw JSON array served for a card.
func (f *FakeAPI) SetInvoices(number, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices[number] = body
}

// SetInvoicesStatus makes a card's invoice endpoint answer with the given status.
func (f *FakeAPI) SetInvoicesStatus(number string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoiceStatus[number] = status
}

// Hold blocks invoice requests for number until the returned func is called.
func (f *FakeAPI) Hold(number string) (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[number] = gate
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			if f.gates[number] == gate {
				delete(f.gates, number)
				close(gate)
			}
			f.mu.Unlock()
		})
	}
}

// CardsCalls is the number of card list requests received.
func (f *FakeAPI) CardsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cardsCallCount
}

// InvoiceCalls is the number of invoice requests received for number.
func (f *FakeAPI) InvoiceCalls(number string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[number]
}

// InvoiceCompleted is the number of invoice responses written for number.
func (f *FakeAPI) InvoiceCompleted(number string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed[number]
}

func (f *FakeAPI) handleCards(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.cardsCallCount++
	status := f.cardsStatus
	cards := f.cards
	f.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cards)
}

func (f *FakeAPI) handleInvoices(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	f.mu.Lock()
	f.calls[number]++
	gate := f.gates[number]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	f.mu.Lock()
	status, hasStatus := f.invoiceStatus[number]
	body, hasBody := f.invoices[number]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.completed[number]++
		f.mu.Unlock()
	}()

	if hasStatus && status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if !hasBody {
		body = "[]"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
