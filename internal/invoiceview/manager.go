// Package invoiceview holds the server-side state behind each open invoice
// page. A view is mounted when a page is rendered, polls the invoice API for
// its selected card for as long as it is mounted, and is unmounted when the
// browser leaves the page or stops renewing its lease.
package invoiceview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/fatura/internal/domain"
)

// Manager owns the mounted views.
type Manager struct {
	source InvoiceSource
	opts   []Option
	o      options

	mu     sync.Mutex
	views  map[string]*View
	closed bool

	sweepTicker *time.Ticker
	stopSweep   chan struct{}
	sweepDone   chan struct{}
}

// NewManager creates a manager and starts its idle-view sweeper.
func NewManager(source InvoiceSource, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		source:      source,
		opts:        opts,
		o:           o,
		views:       make(map[string]*View),
		sweepTicker: time.NewTicker(o.sweepInterval),
		stopSweep:   make(chan struct{}),
		sweepDone:   make(chan struct{}),
	}
	go m.sweep()

	m.o.logger.Info("Invoice view manager started",
		"poll_interval", o.pollInterval,
		"idle_timeout", o.idleTimeout)
	return m
}

// Mount creates and starts a view over cards, with the first card selected.
func (m *Manager) Mount(cards []domain.CreditCard) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("mount view: manager is shut down")
	}

	v := NewView(uuid.NewString(), cards, m.source, m.opts...)
	m.views[v.ID()] = v
	v.Start()

	m.o.logger.Debug("Invoice view mounted", "view_id", v.ID(), "selected", v.Selected(), "views", len(m.views))
	return v, nil
}

// Get returns the view with id and renews its lease.
func (m *Manager) Get(id string) (*View, error) {
	m.mu.Lock()
	v, ok := m.views[id]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("view %s: %w", id, domain.ErrViewNotFound)
	}
	v.Touch()
	return v, nil
}

// Unmount stops and forgets the view with id. Unknown ids are ignored.
func (m *Manager) Unmount(id string) {
	m.mu.Lock()
	v, ok := m.views[id]
	delete(m.views, id)
	m.mu.Unlock()

	if ok {
		v.Stop()
		m.o.logger.Debug("Invoice view unmounted", "view_id", id)
	}
}

// Len is the number of mounted views.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}

// Shutdown unmounts every view and stops the sweeper. It returns ctx's error
// if the views did not stop in time.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	views := m.views
	m.views = make(map[string]*View)
	m.mu.Unlock()

	close(m.stopSweep)
	<-m.sweepDone

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for _, v := range views {
			wg.Add(1)
			go func(v *View) {
				defer wg.Done()
				v.Stop()
			}(v)
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.o.logger.Info("Invoice view manager stopped", "unmounted", len(views))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop invoice views: %w", ctx.Err())
	}
}

func (m *Manager) sweep() {
	defer close(m.sweepDone)
	for {
		select {
		case <-m.sweepTicker.C:
			m.unmountIdle()
		case <-m.stopSweep:
			m.sweepTicker.Stop()
			return
		}
	}
}

// unmountIdle stops views whose lease has not been renewed within the idle
// timeout.
func (m *Manager) unmountIdle() {
	now := m.o.now()

	m.mu.Lock()
	var idle []*View
	for id, v := range m.views {
		if v.idleSince(now) > m.o.idleTimeout {
			idle = append(idle, v)
			delete(m.views, id)
		}
	}
	remaining := len(m.views)
	m.mu.Unlock()

	for _, v := range idle {
		v.Stop()
	}
	if len(idle) > 0 {
		m.o.logger.Info("Unmounted idle invoice views", "count", len(idle), "remaining", remaining)
	}
}
