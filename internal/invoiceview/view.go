package invoiceview

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nfrund/fatura/internal/domain"
)

// DefaultPollInterval is how often a mounted view refetches its invoices.
const DefaultPollInterval = 5 * time.Second

// InvoiceSource fetches the invoices of one card.
type InvoiceSource interface {
	ListInvoices(ctx context.Context, number string) ([]domain.Invoice, error)
}

// Snapshot is a consistent copy of a view's state for rendering.
type Snapshot struct {
	ID       string
	Cards    []domain.CreditCard
	Selected string
	// Invoices is nil until the first successful fetch for Selected.
	Invoices  []domain.Invoice
	Loaded    bool
	FetchedAt time.Time
	LastError error
	// PollInterval is how often the view refetches; pages refresh at the same pace.
	PollInterval time.Duration
}

// View is the server-side state of one mounted invoice page: the selected card
// and the latest invoices fetched for it. Fetches are tagged with the selection
// generation active when they were dispatched; a result is applied only while
// that generation is still current, so a response for a superseded selection
// can never overwrite the invoices of the card selected now.
type View struct {
	id       string
	cards    []domain.CreditCard
	source   InvoiceSource
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	inflight sync.WaitGroup
	started  bool
	stopped  bool // guarded by mu; no fetch is dispatched once set
	stopOnce sync.Once

	mu         sync.Mutex
	selected   string
	gen        uint64 // bumped on every selection change
	seq        uint64 // bumped on every dispatched fetch
	appliedSeq uint64
	settled    bool // a fetch for the current generation has finished
	invoices   []domain.Invoice
	loaded     bool
	fetchedAt  time.Time
	lastErr    error
	lastSeen   time.Time
	changed    chan struct{}
}

// NewView creates a view over cards with the first card selected. The view
// does not fetch anything until Start is called.
func NewView(id string, cards []domain.CreditCard, source InvoiceSource, opts ...Option) *View {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		id:       id,
		cards:    slices.Clone(cards),
		source:   source,
		interval: o.pollInterval,
		logger:   o.logger.With("view_id", id),
		now:      o.now,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		changed:  make(chan struct{}),
	}
	if len(cards) > 0 {
		v.selected = cards[0].Number
	}
	v.lastSeen = v.now()
	return v
}

// ID is the view's identifier.
func (v *View) ID() string {
	return v.id
}

// Start fetches the selected card's invoices and keeps refetching them every
// poll interval until Stop. Polling does not depend on anyone looking at the
// page.
func (v *View) Start() {
	v.mu.Lock()
	if v.started || v.stopped {
		v.mu.Unlock()
		return
	}
	v.started = true
	v.mu.Unlock()

	v.dispatch()
	go v.run()
}

func (v *View) run() {
	defer close(v.done)

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-v.ctx.Done():
			return
		case <-ticker.C:
			v.dispatch()
		}
	}
}

// Stop unmounts the view: the poll loop ends and in-flight requests are
// cancelled. It returns once no request of this view is running.
func (v *View) Stop() {
	v.stopOnce.Do(func() {
		v.mu.Lock()
		v.stopped = true
		started := v.started
		v.mu.Unlock()

		v.cancel()
		if started {
			<-v.done
		}
		v.inflight.Wait()
		v.logger.Debug("Invoice view stopped")
	})
}

// SelectCard makes number the selected card and fetches its invoices right
// away. Invoices of the previous card are dropped immediately.
func (v *View) SelectCard(number string) error {
	if !domain.HasCard(v.cards, number) {
		return fmt.Errorf("select %q: %w", number, domain.ErrUnknownCard)
	}

	v.mu.Lock()
	if number != v.selected {
		v.selected = number
		v.gen++
		v.invoices = nil
		v.loaded = false
		v.settled = false
		v.lastErr = nil
		v.fetchedAt = time.Time{}
		v.broadcastLocked()
		v.logger.Debug("Card selected", "card", number)
	}
	v.mu.Unlock()

	v.dispatch()
	return nil
}

// FetchInvoices fetches the invoices of the card selected at call time and
// applies them if that selection is still current when the response arrives.
// On failure the previous invoices stay in place.
func (v *View) FetchInvoices(ctx context.Context) error {
	v.mu.Lock()
	number, gen := v.selected, v.gen
	v.seq++
	seq := v.seq
	v.mu.Unlock()

	if number == "" {
		return nil
	}

	invoices, err := v.source.ListInvoices(ctx, number)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		v.logger.Debug("Discarding invoices for superseded selection", "card", number, "selected", v.selected)
		return nil
	}
	if seq < v.appliedSeq {
		// An older poll for the same card resolved after a newer one.
		return nil
	}
	v.settled = true
	if err != nil {
		v.lastErr = err
		v.broadcastLocked()
		return err
	}
	v.appliedSeq = seq
	v.invoices = invoices
	v.loaded = true
	v.lastErr = nil
	v.fetchedAt = v.now()
	v.broadcastLocked()
	return nil
}

// dispatch runs FetchInvoices in the background under the view's lifetime.
func (v *View) dispatch() {
	v.mu.Lock()
	if v.stopped {
		v.mu.Unlock()
		return
	}
	// Add happens under mu so Stop cannot be waiting on inflight yet.
	v.inflight.Add(1)
	v.mu.Unlock()

	go func() {
		defer v.inflight.Done()
		if err := v.FetchInvoices(v.ctx); err != nil {
			if v.ctx.Err() != nil {
				return
			}
			v.logger.Warn("Invoice refresh failed, keeping previous invoices", "card", v.Selected(), "error", err)
		}
	}()
}

// Wait blocks until a fetch for the current selection has finished, or ctx is
// done, and returns the state at that point.
func (v *View) Wait(ctx context.Context) Snapshot {
	for {
		v.mu.Lock()
		if v.settled || v.selected == "" {
			snap := v.snapshotLocked()
			v.mu.Unlock()
			return snap
		}
		ch := v.changed
		v.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return v.Snapshot()
		case <-v.ctx.Done():
			return v.Snapshot()
		}
	}
}

// Snapshot returns a copy of the view state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Selected is the currently selected card number.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// Touch renews the view's lease.
func (v *View) Touch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
}

// idleSince reports how long the view has gone without a Touch.
func (v *View) idleSince(now time.Time) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return now.Sub(v.lastSeen)
}

func (v *View) snapshotLocked() Snapshot {
	return Snapshot{
		ID:           v.id,
		Cards:        slices.Clone(v.cards),
		Selected:     v.selected,
		Invoices:     slices.Clone(v.invoices),
		Loaded:       v.loaded,
		FetchedAt:    v.fetchedAt,
		LastError:    v.lastErr,
		PollInterval: v.interval,
	}
}

// broadcastLocked wakes every Wait caller.
func (v *View) broadcastLocked() {
	close(v.changed)
	v.changed = make(chan struct{})
}
