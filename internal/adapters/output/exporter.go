// internal/adapters/output/exporter.go
package output

import (
	"io"
	"sort"

	"contacts/internal/adapters/vcardstore"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
)

type exporterFunc struct {
	name string
	fn   func(io.Writer, []*domain.Contact) error
}

func (e exporterFunc) Name() string { return e.name }

func (e exporterFunc) Export(w io.Writer, contacts []*domain.Contact) error {
	return e.fn(w, contacts)
}

var exporters = map[string]ports.ExporterFactory{
	"json": func() (ports.Exporter, error) {
		return exporterFunc{"json", ContactsJSON}, nil
	},
	"table": func() (ports.Exporter, error) {
		return exporterFunc{"table", ContactsTable}, nil
	},
	"vcard": func() (ports.Exporter, error) {
		return exporterFunc{"vcard", vcardstore.Encode}, nil
	},
}

// NewExporter devuelve el exporter con ese nombre.
func NewExporter(name string) (ports.Exporter, error) {
	factory, ok := exporters[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown export format %q (available: %v)", name, Formats())
	}
	return factory()
}

// Formats lista los formatos disponibles.
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
