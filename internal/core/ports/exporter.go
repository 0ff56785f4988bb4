// internal/core/ports/exporter.go
package ports

import (
	"io"

	"contacts/internal/core/domain"
)

// Exporter es el port para exportar contactos en diferentes formatos.
type Exporter interface {
	// Name retorna el nombre del exporter (ej: "json", "vcard", "table")
	Name() string

	// Export escribe los contactos en el writer
	Export(w io.Writer, contacts []*domain.Contact) error
}

// ExporterFactory es una función que crea una instancia de Exporter.
type ExporterFactory func() (Exporter, error)
