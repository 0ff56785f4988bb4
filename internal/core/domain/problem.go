// internal/core/domain/problem.go
package domain

import (
	"context"
	"strings"
)

// Mutator es la mitad de escritura de un store; lo único que puede usar un fix.
type Mutator interface {
	UpdateField(ctx context.Context, contactID, field, value string) error
	DeleteField(ctx context.Context, contactID, field string) error
	UpdateInfo(ctx context.Context, contactID, field, infoID string, attrs map[string]string) error
	AddInfo(ctx context.Context, contactID, field string, attrs map[string]string) error
	DeleteInfo(ctx context.Context, contactID, field, infoID string) error
}

// Fix es una escritura puntual contra un store.
type Fix func(ctx context.Context, m Mutator) error

// Problem es una desviación encontrada en un contacto. Con fix es un
// warning; sin fix es un error que necesita a una persona.
type Problem struct {
	Message string
	fix     Fix
}

// NewProblem crea un problema; los saltos de línea de msg pasan a espacios.
func NewProblem(msg string, fix Fix) *Problem {
	return &Problem{Message: strings.ReplaceAll(msg, "\n", " "), fix: fix}
}

// Category retorna CategoryWarning si el problema tiene fix y CategoryError si no.
func (p *Problem) Category() Category {
	if p.fix != nil {
		return CategoryWarning
	}
	return CategoryError
}

// Fixable indica si el problema trae fix.
func (p *Problem) Fixable() bool {
	return p.fix != nil
}

// TryFix aplica el fix, si lo hay.
func (p *Problem) TryFix(ctx context.Context, m Mutator) error {
	if p.fix == nil {
		return nil
	}
	return p.fix(ctx, m)
}

func (p *Problem) String() string {
	return p.Category().Icon() + " " + p.Message
}

// Fixes comunes.

// UpdateFieldFix asigna un campo escalar.
func UpdateFieldFix(contactID, field, value string) Fix {
	return func(ctx context.Context, m Mutator) error {
		return m.UpdateField(ctx, contactID, field, value)
	}
}

// UpdateInfoFix cambia atributos de un item.
func UpdateInfoFix(contactID, field, infoID string, attrs map[string]string) Fix {
	return func(ctx context.Context, m Mutator) error {
		return m.UpdateInfo(ctx, contactID, field, infoID, attrs)
	}
}

// DeleteInfosFix borra, en orden, varios items del mismo campo.
func DeleteInfosFix(contactID, field string, infoIDs ...string) Fix {
	return func(ctx context.Context, m Mutator) error {
		for _, id := range infoIDs {
			if err := m.DeleteInfo(ctx, contactID, field, id); err != nil {
				return err
			}
		}
		return nil
	}
}

// Chain corre los fixes uno tras otro y para en el primer fallo.
func Chain(fixes ...Fix) Fix {
	return func(ctx context.Context, m Mutator) error {
		for _, f := range fixes {
			if err := f(ctx, m); err != nil {
				return err
			}
		}
		return nil
	}
}
