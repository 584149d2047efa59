package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nfrund/fatura/internal/domain"
	"github.com/nfrund/fatura/internal/storage"
)

// Snapshot is the persisted form of a generated card list.
type Snapshot struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Cards       []domain.CreditCard `json:"cards"`
}

// Snapshotter reads and writes the card list snapshot at a fixed path.
type Snapshotter struct {
	store storage.Store
	path  string
}

// NewSnapshotter creates a snapshotter writing to path in store.
func NewSnapshotter(store storage.Store, path string) *Snapshotter {
	return &Snapshotter{store: store, path: path}
}

// Save writes the snapshot.
func (s *Snapshotter) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.store.Save(ctx, s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot. It returns nil, nil when there is none.
func (s *Snapshotter) Load(ctx context.Context) (*Snapshot, error) {
	exists, err := s.store.Exists(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}
	if !exists {
		return nil, nil
	}

	f, err := s.store.Open(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return &snap, nil
}
