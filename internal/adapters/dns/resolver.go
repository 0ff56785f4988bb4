// internal/adapters/dns/resolver.go
package dns

import (
	"context"
	"net"
	"time"

	"contacts/internal/core/ports"
	"contacts/internal/platform/cache"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// Lookuper es el subconjunto de *net.Resolver que usa el adapter.
type Lookuper interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Options configura el resolver.
type Options struct {
	// Timeout por consulta (default 5s)
	Timeout time.Duration

	// CacheSize respuestas recordadas por tipo de consulta (default 256)
	CacheSize int

	// TTL vida de una respuesta cacheada (default 10m)
	TTL time.Duration
}

// Resolver implementa ports.HostResolver sobre net.Resolver. Cachea tanto
// las respuestas como los "no such host", que son el caso habitual al
// validar una libreta con dominios caducados.
type Resolver struct {
	lookup  Lookuper
	timeout time.Duration
	hosts   *cache.LRU[string, result[[]string]]
	mx      *cache.LRU[string, result[[]*net.MX]]
	logger  logx.Logger
}

type result[T any] struct {
	value T
	err   error
}

var _ ports.HostResolver = (*Resolver)(nil)

// New crea un resolver sobre net.DefaultResolver.
func New(opts Options, logger logx.Logger) *Resolver {
	return NewWithLookuper(net.DefaultResolver, opts, logger)
}

// NewWithLookuper permite inyectar el backend de consultas.
func NewWithLookuper(l Lookuper, opts Options, logger logx.Logger) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Resolver{
		lookup:  l,
		timeout: opts.Timeout,
		hosts:   cache.New[string, result[[]string]](opts.CacheSize, opts.TTL),
		mx:      cache.New[string, result[[]*net.MX]](opts.CacheSize, opts.TTL),
		logger:  logger.With("component", "dns"),
	}
}

func (r *Resolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	res, err := r.hosts.GetOrLoad(host, func() (result[[]string], error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		addrs, err := r.lookup.LookupHost(ctx, host)
		r.logger.Debug("lookup host", "host", host, "addrs", len(addrs), "error", errString(err))
		return result[[]string]{addrs, err}, transient(err)
	})
	if err != nil {
		return nil, err
	}
	return res.value, res.err
}

func (r *Resolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	res, err := r.mx.GetOrLoad(name, func() (result[[]*net.MX], error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		records, err := r.lookup.LookupMX(ctx, name)
		r.logger.Debug("lookup mx", "domain", name, "records", len(records), "error", errString(err))
		return result[[]*net.MX]{records, err}, transient(err)
	})
	if err != nil {
		return nil, err
	}
	return res.value, res.err
}

// transient devuelve err salvo que sea un "not found" definitivo, que se
// guarda en cache junto a la respuesta.
func transient(err error) error {
	if err == nil {
		return nil
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return nil
	}
	return err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
