// internal/core/ports/repository.go
package ports

import (
	"context"
	"time"
)

// MutationOp identifica el tipo de escritura aplicada al store.
type MutationOp string

const (
	OpUpdateField MutationOp = "update_field"
	OpDeleteField MutationOp = "delete_field"
	OpUpdateInfo  MutationOp = "update_info"
	OpAddInfo     MutationOp = "add_info"
	OpDeleteInfo  MutationOp = "delete_info"
)

// JournalEntry es una escritura registrada en el journal.
type JournalEntry struct {
	ID        int64
	Store     string
	Op        MutationOp
	ContactID string
	Field     string
	InfoID    string
	Value     string
	Attrs     map[string]string
	Err       string
	AppliedAt time.Time
}

// JournalRepository es el port para persistir el historial de escrituras.
// Permite auditar qué cambió un `--fix`.
type JournalRepository interface {
	// Record guarda una escritura
	Record(ctx context.Context, entry JournalEntry) error

	// List recupera escrituras aplicando filtros opcionales
	List(ctx context.Context, filter JournalFilter) ([]JournalEntry, error)

	// Close cierra la conexión con el repositorio
	Close() error
}

// JournalFilter define filtros para listar el journal.
type JournalFilter struct {
	// ContactID filtrar por contacto
	ContactID string

	// Since fecha mínima
	Since time.Time

	// Limit límite de resultados
	Limit int
}

// DefaultJournalFilter retorna un filtro por defecto.
func DefaultJournalFilter() JournalFilter {
	return JournalFilter{Limit: 100}
}
