// internal/core/checks/engine.go
package checks

import (
	"context"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// Options son las dependencias opcionales de los checks.
type Options struct {
	// Formats formato de dirección por código de país (minúsculas)
	Formats map[string]domain.AddressFormat

	// Geocoder si es nil no se hace el cruce con el geocoder
	Geocoder ports.Geocoder

	// Resolver si es nil no se hacen comprobaciones de red (MX, hosts)
	Resolver ports.HostResolver

	// Logger opcional; por defecto silencioso
	Logger logx.Logger
}

// Engine ejecuta una lista ordenada de checks sobre un contacto.
type Engine struct {
	checks []Check
	logger logx.Logger
}

// NewEngine crea un engine con los checks dados, en ese orden.
func NewEngine(logger logx.Logger, checks ...Check) *Engine {
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Engine{
		checks: checks,
		logger: logger.With("component", "checks"),
	}
}

// Default construye el pipeline completo en el orden documentado:
// casing, nickname, label, phone, email, url, home page, custom date,
// duplicate, address.
func Default(opts Options) *Engine {
	all := make([]Check, 0, len(casingFields)+9)
	all = append(all, CasingChecks()...)
	all = append(all,
		Nickname(),
		Label(),
		Phone(),
		Email(opts.Resolver),
		URL(opts.Resolver),
		HomePage(),
		CustomDate(),
		Duplicate(),
		Address(opts.Formats, opts.Geocoder),
	)
	return NewEngine(opts.Logger, all...)
}

// Checks retorna los checks registrados, en orden.
func (e *Engine) Checks() []Check {
	return append([]Check(nil), e.checks...)
}

// Run ejecuta todos los checks. Cada check ve sólo el contacto de entrada.
// Si un check falla, se devuelve ese error y se descartan los problemas
// parciales del contacto.
func (e *Engine) Run(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error) {
	var problems []*domain.Problem
	for _, chk := range e.checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := chk.Check(ctx, c)
		if err != nil {
			e.logger.Warn("check failed", "check", chk.Name(), "contact", c.ID, "error", err.Error())
			return nil, errors.Wrapf(err, "check %s on %q", chk.Name(), c.Name)
		}
		if len(found) > 0 {
			e.logger.Debug("problems found", "check", chk.Name(), "contact", c.ID, "count", len(found))
		}
		problems = append(problems, found...)
	}
	return problems, nil
}
