// internal/testutil/mocks/geocoder.go
package mocks

import (
	"context"
	"sync"

	"contacts/internal/core/domain"
)

// MockGeocoder devuelve Result si está fijado; si no, repite las partes de
// la dirección consultada, de modo que una dirección completa no genera
// diferencias.
type MockGeocoder struct {
	// Result respuesta fija
	Result *domain.Geocode

	// Unresolvable hace que devuelva nil, nil
	Unresolvable bool

	// Err error a devolver
	Err error

	mu    sync.Mutex
	calls []domain.Info
}

func (g *MockGeocoder) Geocode(_ context.Context, address domain.Info) (*domain.Geocode, error) {
	g.mu.Lock()
	g.calls = append(g.calls, address)
	g.mu.Unlock()

	switch {
	case g.Err != nil:
		return nil, g.Err
	case g.Unresolvable:
		return nil, nil
	case g.Result != nil:
		geo := *g.Result
		return &geo, nil
	}

	a := address.Address
	return &domain.Geocode{
		Street:      firstLine(a.Street),
		City:        a.City,
		State:       a.State,
		ZipCode:     a.ZipCode,
		CountryCode: a.CountryCode,
	}, nil
}

// Calls devuelve las direcciones consultadas.
func (g *MockGeocoder) Calls() []domain.Info {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Info(nil), g.calls...)
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
