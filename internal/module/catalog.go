package module

import (
	"fmt"
	"sort"
	"sync"

	oerrors "github.com/rotorz/capri/internal/errors"
)

// CatalogHost serves sources and scripts registered in memory.
type CatalogHost struct {
	mu      sync.RWMutex
	sources map[string]*Source
	scripts map[string]func()
}

// NewCatalogHost creates an empty catalog.
func NewCatalogHost() *CatalogHost {
	return &CatalogHost{
		sources: map[string]*Source{},
		scripts: map[string]func(){},
	}
}

// Add registers a source under its canonical name.
func (h *CatalogHost) Add(src *Source) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sources[src.Name] = src
}

// AddScript registers a script under name. The script runs when its
// source is delivered and is expected to queue an anonymous definition
// with Registry.DefineModule.
func (h *CatalogHost) AddScript(name string, script func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scripts[name] = script
}

// Names returns every registered name, sorted.
func (h *CatalogHost) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.sources)+len(h.scripts))
	for n := range h.sources {
		names = append(names, n)
	}
	for n := range h.scripts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Fetch implements SyncHost.
func (h *CatalogHost) Fetch(name string) (*Source, error) {
	h.mu.RLock()
	src, ok := h.sources[name]
	script, isScript := h.scripts[name]
	h.mu.RUnlock()

	switch {
	case ok:
		cp := *src
		cp.Name = name
		return &cp, nil
	case isScript:
		return &Source{Name: name, Script: script}, nil
	}
	return nil, oerrors.NewNotFoundError(fmt.Sprintf("module %q is not in the catalog", name), name, "")
}
