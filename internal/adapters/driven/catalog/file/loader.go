// Package file loads product catalogs from TOML files into a catalog store.
// An optional watcher reloads the store when the file changes on disk.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driven"
	"github.com/counterline-labs/shoptalk/internal/logger"
)

// catalogFile is the TOML catalog file format.
type catalogFile struct {
	Products []productEntry `toml:"products"`
}

// productEntry is one [[products]] table in the catalog file.
type productEntry struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Price       float64 `toml:"price"`
	Stock       int     `toml:"stock"`
	Category    string  `toml:"category"`
	Description string  `toml:"description"`
}

// Loader reads a TOML catalog file into a catalog store.
type Loader struct {
	path  string
	store driven.CatalogStore
}

// NewLoader creates a loader for the given catalog file path.
func NewLoader(path string, store driven.CatalogStore) *Loader {
	return &Loader{path: path, store: store}
}

// Path returns the catalog file path.
func (l *Loader) Path() string {
	return l.path
}

// Load parses the catalog file and upserts every product into the store.
// Entries without an ID get a generated one. Returns the number of products
// loaded.
func (l *Loader) Load(ctx context.Context) (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, fmt.Errorf("reading catalog file: %w", err)
	}

	var parsed catalogFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return 0, fmt.Errorf("parsing catalog file: %w", err)
	}
	if len(parsed.Products) == 0 {
		return 0, fmt.Errorf("%s: %w", l.path, domain.ErrEmptyCatalog)
	}

	now := time.Now().UTC()
	loaded := 0
	for i, entry := range parsed.Products {
		product := &domain.Product{
			ID:          entry.ID,
			Name:        entry.Name,
			Price:       entry.Price,
			Stock:       entry.Stock,
			Category:    entry.Category,
			Description: entry.Description,
			CreatedAt:   now,
		}
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		if err := product.Validate(); err != nil {
			return loaded, fmt.Errorf("catalog entry %d (%q): %w", i+1, entry.Name, err)
		}
		if err := l.store.Save(ctx, product); err != nil {
			return loaded, fmt.Errorf("saving catalog entry %q: %w", entry.Name, err)
		}
		loaded++
	}

	return loaded, nil
}

// Watch reloads the catalog whenever the file changes, until ctx is done.
// Editors often replace files by rename, so the watch is on the directory
// and events are filtered by name.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target, err := filepath.Abs(l.path)
	if err != nil {
		return fmt.Errorf("resolving catalog path: %w", err)
	}

	logger.Info("watching catalog file %s", l.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			count, err := l.Load(ctx)
			if err != nil {
				logger.Warn("catalog reload failed: %v", err)
				continue
			}
			logger.Info("catalog reloaded: %d products", count)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error: %v", err)
		}
	}
}
