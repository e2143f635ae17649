// Package backend selects and assembles the ledger store from config.
package backend

import (
	"context"
	"fmt"
	"time"

	"ourcash/internal/cache"
	"ourcash/internal/config"
	"ourcash/internal/sheets"
	"ourcash/internal/sheets/google"
	"ourcash/internal/sheets/memory"
)

type Type string

const (
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

func (t Type) IsValid() bool {
	return t == SheetsBackend || t == MemoryBackend
}

// cachedStore pairs a cached read side with the backend's write side.
type cachedStore struct {
	sheets.Source
	sheets.Sink
}

// New assembles the ledger store named by cfg.Backend. The read side
// is wrapped in a read-through cache registered with the returned
// manager; call its Stop on shutdown.
func New(ctx context.Context, cfg *config.Config) (sheets.Store, *cache.Manager, error) {
	backendType := Type(cfg.Backend)
	if !backendType.IsValid() {
		return nil, nil, fmt.Errorf("invalid backend type: %s", cfg.Backend)
	}

	var store sheets.Store
	switch backendType {
	case SheetsBackend:
		client, err := google.New(ctx, cfg.SpreadsheetID, google.DefaultTabs())
		if err != nil {
			return nil, nil, fmt.Errorf("create sheets backend: %w", err)
		}
		store = client
	case MemoryBackend:
		store = memory.New()
	}

	mgr := cache.NewManager()
	mgr.StartCleanup(time.Minute)

	cached := &cachedStore{
		Source: sheets.NewCachedSource(store, cfg.CacheTTL, mgr),
		Sink:   store,
	}
	return cached, mgr, nil
}
