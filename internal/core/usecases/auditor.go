// internal/core/usecases/auditor.go
package usecases

import (
	"context"

	"contacts/internal/core/checks"
	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// Auditor recorre los contactos del store, los revisa y opcionalmente
// los arregla, informando cada paso al Reporter.
type Auditor struct {
	store    ports.ContactStore
	engine   *checks.Engine
	fixer    *Fixer
	reporter ports.Reporter
	logger   logx.Logger

	check bool
	fix   bool
}

// AuditorOptions configura el auditor.
type AuditorOptions struct {
	Store    ports.ContactStore
	Engine   *checks.Engine
	Reporter ports.Reporter
	Logger   logx.Logger

	// Check ejecuta los checks sobre cada contacto
	Check bool

	// Fix aplica los fixes; implica Check
	Fix bool
}

// NewAuditor crea un auditor. Sin Engine se usan los checks por defecto
// sin geocoder ni resolver.
func NewAuditor(opts AuditorOptions) *Auditor {
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	if opts.Reporter == nil {
		opts.Reporter = ports.NopReporter{}
	}
	if opts.Engine == nil {
		opts.Engine = checks.Default(checks.Options{Logger: opts.Logger})
	}
	return &Auditor{
		store:    opts.Store,
		engine:   opts.Engine,
		fixer:    NewFixer(opts.Logger),
		reporter: opts.Reporter,
		logger:   opts.Logger.With("component", "auditor"),
		check:    opts.Check || opts.Fix,
		fix:      opts.Fix,
	}
}

// Run audita los contactos que coinciden con keywords. Un error del store,
// de un check o de un fix corta la corrida; el resumen cuenta lo hecho hasta
// ahí.
func (a *Auditor) Run(ctx context.Context, keywords []string) (ports.AuditSummary, error) {
	var summary ports.AuditSummary

	total, err := a.store.Count(ctx, keywords)
	if err != nil {
		return summary, errors.Wrapf(err, "count contacts in %s", a.store.Name())
	}
	a.reporter.Started(total)
	a.logger.Info("audit started", "store", a.store.Name(), "keywords", len(keywords), "total", total,
		"check", a.check, "fix", a.fix)

	for c, err := range a.store.Find(ctx, keywords) {
		if err != nil {
			return summary, errors.Wrapf(err, "find contacts in %s", a.store.Name())
		}
		summary.Contacts++

		if !a.check {
			a.reporter.Contact(c, nil)
			continue
		}

		problems, err := a.engine.Run(ctx, c)
		if err != nil {
			return summary, err
		}
		a.reporter.Contact(c, problems)
		tally(&summary, problems)

		if a.fix && hasFixable(problems) {
			if err := a.fixContact(ctx, c, problems); err != nil {
				return summary, err
			}
			summary.Fixed++
		}
	}

	if a.fix {
		if ps, ok := a.store.(ports.PersistentStore); ok {
			if err := ps.Save(ctx); err != nil {
				return summary, errors.Wrapf(err, "save %s", a.store.Name())
			}
		}
	}

	a.reporter.Finished(summary)
	a.logger.Info("audit finished", "contacts", summary.Contacts, "warnings", summary.Warnings,
		"errors", summary.Errors, "fixed", summary.Fixed)
	return summary, nil
}

func (a *Auditor) fixContact(ctx context.Context, before *domain.Contact, problems []*domain.Problem) error {
	if _, err := a.fixer.Apply(ctx, a.store, problems); err != nil {
		return errors.Wrapf(err, "fix %q", before.Name)
	}

	after, err := a.store.Get(ctx, before.ID)
	if err != nil {
		return errors.Wrapf(err, "refetch %q", before.Name)
	}
	remaining, err := a.engine.Run(ctx, after)
	if err != nil {
		return err
	}
	a.reporter.Fixed(before, after, diff.Compute(before, after), remaining)
	return nil
}

func tally(s *ports.AuditSummary, problems []*domain.Problem) {
	for _, p := range problems {
		if p.Category() == domain.CategoryError {
			s.Errors++
		} else {
			s.Warnings++
		}
	}
}

func hasFixable(problems []*domain.Problem) bool {
	for _, p := range problems {
		if p.Fixable() {
			return true
		}
	}
	return false
}
