// internal/core/ports/notifier.go
package ports

import (
	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
)

// Reporter recibe los eventos de una auditoría para mostrarlos.
// Desacopla el caso de uso de la presentación (pterm, texto plano, JSON).
type Reporter interface {
	// Started se llama una vez con el total estimado (-1 si es desconocido)
	Started(total int)

	// Contact se llama por cada contacto revisado con sus problemas
	Contact(c *domain.Contact, problems []*domain.Problem)

	// Fixed se llama tras aplicar los fixes y volver a leer el contacto
	Fixed(before, after *domain.Contact, changes diff.Diff, remaining []*domain.Problem)

	// Finished se llama al final con el resumen
	Finished(summary AuditSummary)
}

// AuditSummary resume una auditoría.
type AuditSummary struct {
	Contacts int
	Warnings int
	Errors   int
	Fixed    int
}

// NopReporter ignora todos los eventos.
type NopReporter struct{}

func (NopReporter) Started(int)                                                  {}
func (NopReporter) Contact(*domain.Contact, []*domain.Problem)                   {}
func (NopReporter) Fixed(_, _ *domain.Contact, _ diff.Diff, _ []*domain.Problem) {}
func (NopReporter) Finished(AuditSummary)                                        {}
