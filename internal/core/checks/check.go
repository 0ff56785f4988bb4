// internal/core/checks/check.go

// Package checks contiene los checks que se corren sobre cada contacto y el
// engine que los ejecuta en orden.
package checks

import (
	"context"
	"net"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
)

// Check examina un aspecto de un contacto. El error queda para fallos de
// colaboradores (geocoder, transporte DNS); los hallazgos son problemas.
type Check interface {
	Name() string
	Check(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error)
}

// Func adapta una función a la interfaz Check.
type Func struct {
	name string
	fn   func(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error)
}

// NewFunc envuelve fn como un check con nombre.
func NewFunc(name string, fn func(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error)) Func {
	return Func{name: name, fn: fn}
}

func (f Func) Name() string { return f.name }

func (f Func) Check(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error) {
	return f.fn(ctx, c)
}

// pure envuelve un check que nunca falla.
func pure(name string, fn func(c *domain.Contact) []*domain.Problem) Func {
	return NewFunc(name, func(_ context.Context, c *domain.Contact) ([]*domain.Problem, error) {
		return fn(c), nil
	})
}

// isNotFound indica si un error del resolver significa que el nombre no
// existe, y no un fallo de transporte.
func isNotFound(err error) bool {
	if errors.IsNotFound(err) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}
