// internal/platform/ui/presenter.go
package ui

import (
	"io"
	"os"
	"strings"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
)

// UIMode define el modo de visualización
type UIMode string

const (
	UIModePretty UIMode = "pretty" // Colores y spinner (default en terminal)
	UIModePlain  UIMode = "plain"  // Texto plano, apto para pipes
	UIModeQuiet  UIMode = "quiet"  // Sin salida
)

// Presenter muestra los eventos de una auditoría.
type Presenter interface {
	ports.Reporter

	// Begin se llama antes de que el store cuente los contactos
	Begin(msg string)

	// Close libera recursos y devuelve el primer error de escritura
	Close() error
}

// DetailFunc escribe todos los campos de un contacto (ver output.ContactDetail).
type DetailFunc func(w io.Writer, c *domain.Contact) error

// Options configura el presenter.
type Options struct {
	Writer io.Writer
	Mode   UIMode

	// Check muestra el icono de severidad y los problemas de cada contacto
	Check bool

	// Detail, si no es nil, se escribe debajo de cada contacto
	Detail DetailFunc

	// Interactive activa el spinner; solo tiene sentido en una terminal
	Interactive bool
}

// ParseMode valida un modo; vacío se acepta y significa "según la terminal".
func ParseMode(s string) (UIMode, error) {
	switch m := UIMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", UIModePretty, UIModePlain, UIModeQuiet:
		return m, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidInput, "ui mode %q: want pretty, plain or quiet", s)
	}
}

// IsTerminal indica si f es un dispositivo de caracteres.
func IsTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// New crea el presenter del modo pedido.
func New(opts Options) Presenter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	switch opts.Mode {
	case UIModeQuiet:
		return NewNoopPresenter()
	case UIModePlain:
		return NewPlainPresenter(opts)
	default:
		return NewPTermPresenter(opts)
	}
}
