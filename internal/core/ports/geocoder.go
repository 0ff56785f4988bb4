// internal/core/ports/geocoder.go
package ports

import (
	"context"
	"net"

	"contacts/internal/core/domain"
)

// Geocoder resuelve una dirección a su forma estructurada.
// Un resultado nil sin error significa "no se pudo resolver".
type Geocoder interface {
	Geocode(ctx context.Context, address domain.Info) (*domain.Geocode, error)
}

// HostResolver hace las consultas DNS de los checks de alcanzabilidad
// y entregabilidad.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}
