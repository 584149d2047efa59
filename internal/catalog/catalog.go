// Package catalog serves the card list the page is built from. The list is
// regenerated at most once per revalidation window: the first request builds it
// synchronously, later requests past the window get the previous generation
// while a single background regeneration runs.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nfrund/fatura/internal/domain"
)

// DefaultRevalidate is how long a generated card list is considered fresh.
const DefaultRevalidate = 60 * time.Second

const regenerateKey = "credit-cards"

// CardSource fetches the card list from its origin.
type CardSource interface {
	ListCreditCards(ctx context.Context) ([]domain.CreditCard, error)
}

// generation is one built card list, or the not-found outcome.
type generation struct {
	cards    []domain.CreditCard
	notFound bool
	builtAt  time.Time
}

// Catalog caches the card list with a stale-while-revalidate policy.
type Catalog struct {
	source     CardSource
	revalidate time.Duration
	snapshots  *Snapshotter
	logger     *slog.Logger
	now        func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	current *generation
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRevalidate sets the freshness window.
func WithRevalidate(d time.Duration) Option {
	return func(c *Catalog) {
		c.revalidate = d
	}
}

// WithSnapshots persists every successful generation and lets LoadSnapshot
// restore the last one.
func WithSnapshots(s *Snapshotter) Option {
	return func(c *Catalog) {
		c.snapshots = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// New creates a catalog over source.
func New(source CardSource, opts ...Option) *Catalog {
	c := &Catalog{
		source:     source,
		revalidate: DefaultRevalidate,
		logger:     slog.Default().With("component", "catalog"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cards returns the current card list. It returns an error matching
// domain.ErrNotFound when the last generation saw a 404 from the API, and any
// other error only when no generation exists yet.
func (c *Catalog) Cards(ctx context.Context) ([]domain.CreditCard, error) {
	c.mu.RLock()
	gen := c.current
	c.mu.RUnlock()

	if gen == nil {
		v, err, _ := c.group.Do(regenerateKey, func() (any, error) {
			return c.regenerate(ctx)
		})
		if err != nil {
			return nil, err
		}
		return result(v.(*generation))
	}

	if c.now().Sub(gen.builtAt) >= c.revalidate {
		c.triggerRegeneration(ctx)
	}
	return result(gen)
}

// Regenerate rebuilds the card list now, bypassing the freshness window.
func (c *Catalog) Regenerate(ctx context.Context) ([]domain.CreditCard, error) {
	v, err, _ := c.group.Do(regenerateKey, func() (any, error) {
		return c.regenerate(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result(v.(*generation))
}

// GeneratedAt is the build time of the current generation, zero if none.
func (c *Catalog) GeneratedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return time.Time{}
	}
	return c.current.builtAt
}

// LoadSnapshot restores the last persisted generation, keeping its original
// build time so an old snapshot is regenerated on first use.
func (c *Catalog) LoadSnapshot(ctx context.Context) error {
	if c.snapshots == nil {
		return nil
	}
	snap, err := c.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		c.current = &generation{cards: snap.Cards, builtAt: snap.GeneratedAt}
		c.logger.Info("Restored card list snapshot", "cards", len(snap.Cards), "generated_at", snap.GeneratedAt)
	}
	return nil
}

func (c *Catalog) triggerRegeneration(ctx context.Context) {
	bg := context.WithoutCancel(ctx)
	c.group.DoChan(regenerateKey, func() (any, error) {
		return c.regenerate(bg)
	})
}

// regenerate fetches the list from the source and installs it. A failure other
// than not-found leaves the previous generation in place.
func (c *Catalog) regenerate(ctx context.Context) (*generation, error) {
	started := c.now()
	cards, err := c.source.ListCreditCards(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		gen := &generation{notFound: true, builtAt: started}
		c.install(gen)
		c.logger.Info("Card list not found at origin", "error", err)
		return gen, nil
	case err != nil:
		c.mu.RLock()
		hasPrevious := c.current != nil
		c.mu.RUnlock()
		if hasPrevious {
			c.logger.Warn("Card list regeneration failed, keeping previous generation", "error", err)
		}
		return nil, fmt.Errorf("regenerate card list: %w", err)
	}

	gen := &generation{cards: slices.Clone(cards), builtAt: started}
	c.install(gen)
	c.logger.Debug("Card list regenerated", "cards", len(cards))

	if c.snapshots != nil {
		if err := c.snapshots.Save(ctx, Snapshot{GeneratedAt: started, Cards: gen.cards}); err != nil {
			c.logger.Warn("Failed to persist card list snapshot", "error", err)
		}
	}
	return gen, nil
}

func (c *Catalog) install(gen *generation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current.builtAt.After(gen.builtAt) {
		return
	}
	c.current = gen
}

func result(gen *generation) ([]domain.CreditCard, error) {
	if gen.notFound {
		return nil, fmt.Errorf("credit cards: %w", domain.ErrNotFound)
	}
	return slices.Clone(gen.cards), nil
}
