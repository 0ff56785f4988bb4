// internal/platform/registry/store_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// StoreRegistry gestiona el registro y construcción de contact stores.
// Implementa el patrón Registry + Factory para desacoplar la elección del
// backend (osascript, JSON, vCard) del código de aplicación.
type StoreRegistry struct {
	mu        sync.RWMutex
	factories map[string]StoreFactory
	metadata  map[string]StoreMetadata
	logger    logx.Logger
}

// StoreFactory es una función que crea una instancia de ContactStore.
type StoreFactory func(opts ports.StoreOptions, logger logx.Logger) (ports.ContactStore, error)

// StoreMetadata describe un backend registrado.
type StoreMetadata struct {
	Name        string
	Description string

	// NeedsPath indica que el store lee y escribe un archivo (StoreOptions.Path)
	NeedsPath bool
}

// globalRegistry es la instancia global del registry.
var globalRegistry *StoreRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *StoreRegistry {
	once.Do(func() {
		globalRegistry = NewStoreRegistry(logx.NewSilent())
	})
	return globalRegistry
}

// NewStoreRegistry crea un nuevo registry de stores.
func NewStoreRegistry(logger logx.Logger) *StoreRegistry {
	return &StoreRegistry{
		factories: make(map[string]StoreFactory),
		metadata:  make(map[string]StoreMetadata),
		logger:    logger.With("component", "store-registry"),
	}
}

// Register registra una store factory con su metadata.
// Típicamente llamado desde init() de cada adapter.
func (r *StoreRegistry) Register(name string, factory StoreFactory, meta StoreMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("store name cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil for store %s", name)
	}

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("store %s is already registered", name)
	}

	if meta.Name == "" {
		meta.Name = name
	}
	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("store registered", "name", name)

	return nil
}

// Build construye el store pedido.
func (r *StoreRegistry) Build(name string, opts ports.StoreOptions, logger logx.Logger) (ports.ContactStore, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	meta := r.metadata[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "store %q not registered (available: %v)", name, r.List())
	}
	if logger == nil {
		logger = r.logger
	}
	if meta.NeedsPath && opts.Path == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "store %q needs a file path", name)
	}
	if opts.Batch <= 0 {
		opts.Batch = 1
	}

	store, err := factory(opts, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "build store %s", name)
	}

	logger.Debug("store built", "name", name, "path", opts.Path, "batch", opts.Batch, "brief", opts.Brief)
	return store, nil
}

// List retorna los nombres de todos los stores registrados.
func (r *StoreRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna el metadata de un store.
func (r *StoreRegistry) GetMetadata(name string) (StoreMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[name]
	return meta, exists
}

// IsRegistered verifica si un store está registrado.
func (r *StoreRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// Clear elimina todos los stores registrados (útil para testing).
func (r *StoreRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]StoreFactory)
	r.metadata = make(map[string]StoreMetadata)
}
