// internal/core/ports/store.go
package ports

import (
	"context"
	"iter"

	"contacts/internal/core/domain"
)

// ContactStore es el port primario hacia el address book.
// Cualquier backend (osascript, snapshot JSON, vCard) debe implementar esta interfaz.
type ContactStore interface {
	domain.Mutator

	// Name retorna el nombre único del store (ej: "applescript", "json", "vcard")
	Name() string

	// Count retorna cuántos contactos coinciden con las keywords
	Count(ctx context.Context, keywords []string) (int, error)

	// Find recorre los contactos que coinciden con las keywords.
	// La secuencia es perezosa, finita y no se puede reiniciar.
	Find(ctx context.Context, keywords []string) iter.Seq2[*domain.Contact, error]

	// Get obtiene un contacto por id; falla con errors.ErrNotFound si no existe
	Get(ctx context.Context, id string) (*domain.Contact, error)

	// Close libera recursos (procesos, archivos, conexiones)
	Close() error
}

// PersistentStore es un store que mantiene los cambios en memoria hasta Save.
type PersistentStore interface {
	ContactStore

	// Save escribe el estado actual al medio persistente
	Save(ctx context.Context) error
}

// StoreOptions configura la construcción de un store desde el registry.
type StoreOptions struct {
	// Path archivo de datos para stores basados en archivo
	Path string

	// Batch cantidad de ids por round-trip al backend
	Batch int

	// Brief pide la proyección reducida (id, name, is_company, has_image)
	Brief bool

	// Custom opciones específicas del backend (ej: "osascript", "timeout")
	Custom map[string]interface{}
}
