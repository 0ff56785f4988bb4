package memstore

import (
	"contacts/internal/core/ports"
	"contacts/internal/platform/logx"
	"contacts/internal/platform/registry"
)

// Auto-registro de los stores al importar el package
func init() {
	if err := registry.Global().Register(
		"json",
		func(opts ports.StoreOptions, logger logx.Logger) (ports.ContactStore, error) {
			return Open(opts.Path, WithBrief(opts.Brief), WithLogger(logger))
		},
		registry.StoreMetadata{
			Description: "JSON snapshot file (array of contacts)",
			NeedsPath:   true,
		},
	); err != nil {
		panic(err)
	}

	if err := registry.Global().Register(
		"memory",
		func(opts ports.StoreOptions, logger logx.Logger) (ports.ContactStore, error) {
			return New(nil, WithBrief(opts.Brief), WithLogger(logger)), nil
		},
		registry.StoreMetadata{
			Description: "empty in-memory store, discarded on exit",
		},
	); err != nil {
		panic(err)
	}
}
