// internal/testutil/mocks/resolver.go
package mocks

import (
	"context"
	"net"
	"sync"
)

// MockResolver responde desde mapas en memoria. Un nombre desconocido
// produce un *net.DNSError con IsNotFound, como el resolver real.
type MockResolver struct {
	// Hosts registros A/AAAA por nombre
	Hosts map[string][]string

	// MX registros MX por dominio
	MX map[string][]*net.MX

	// Err fallo de transporte para cualquier consulta
	Err error

	mu      sync.Mutex
	queries []string
}

// NewMockResolver crea un resolver donde los hosts dados resuelven a una
// IP de documentación y aceptan correo.
func NewMockResolver(hosts ...string) *MockResolver {
	r := &MockResolver{Hosts: map[string][]string{}, MX: map[string][]*net.MX{}}
	for _, h := range hosts {
		r.Hosts[h] = []string{"192.0.2.1"}
		r.MX[h] = []*net.MX{{Host: "mx." + h + ".", Pref: 10}}
	}
	return r
}

func (r *MockResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	r.track("host:" + host)
	if r.Err != nil {
		return nil, r.Err
	}
	if addrs, ok := r.Hosts[host]; ok {
		return addrs, nil
	}
	return nil, notFound(host)
}

func (r *MockResolver) LookupMX(_ context.Context, domain string) ([]*net.MX, error) {
	r.track("mx:" + domain)
	if r.Err != nil {
		return nil, r.Err
	}
	if mx, ok := r.MX[domain]; ok {
		return mx, nil
	}
	return nil, notFound(domain)
}

// Queries devuelve las consultas hechas, con prefijo "host:" o "mx:".
func (r *MockResolver) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func (r *MockResolver) track(q string) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
}

func notFound(name string) error {
	return &net.DNSError{Err: "no such host", Name: name, IsNotFound: true}
}
