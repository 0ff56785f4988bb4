// internal/core/usecases/fixer.go
package usecases

import (
	"context"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// Fixer aplica los fixes de una lista de problemas, en orden.
type Fixer struct {
	logger logx.Logger
}

// NewFixer crea un Fixer.
func NewFixer(logger logx.Logger) *Fixer {
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Fixer{logger: logger.With("component", "fixer")}
}

// Apply corre cada fix una vez y para en el primer fallo; lo aplicado
// antes queda aplicado. Devuelve cuántos fixes salieron bien.
func (f *Fixer) Apply(ctx context.Context, m domain.Mutator, problems []*domain.Problem) (int, error) {
	applied := 0
	for _, p := range problems {
		if !p.Fixable() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		if err := p.TryFix(ctx, m); err != nil {
			f.logger.Warn("fix failed", "problem", p.Message, "error", err.Error())
			return applied, errors.Wrapf(err, "fix %q", p.Message)
		}
		f.logger.Debug("fix applied", "problem", p.Message)
		applied++
	}
	return applied, nil
}
