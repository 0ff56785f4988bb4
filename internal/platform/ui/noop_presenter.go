// internal/platform/ui/noop_presenter.go
package ui

import "contacts/internal/core/ports"

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet.
type NoopPresenter struct {
	ports.NopReporter
}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Begin no hace nada
func (n *NoopPresenter) Begin(string) {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
