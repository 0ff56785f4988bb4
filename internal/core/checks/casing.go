// internal/core/checks/casing.go
package checks

import (
	"fmt"
	"strings"
	"unicode"

	"contacts/internal/core/domain"
)

// casingFields son los campos de nombre que se capitalizan. Organización y
// apodo no se tocan.
var casingFields = []string{
	domain.FieldPrefix,
	domain.FieldFirstName,
	domain.FieldMiddleName,
	domain.FieldLastName,
	domain.FieldMaidenName,
	domain.FieldSuffix,
	domain.FieldJobTitle,
	domain.FieldDepartment,
}

// CasingChecks devuelve un check por campo elegible, en orden de campo.
func CasingChecks() []Check {
	out := make([]Check, 0, len(casingFields))
	for _, name := range casingFields {
		out = append(out, Casing(domain.MustField(name)))
	}
	return out
}

// Casing marca un valor todo en minúsculas que cambiaría al capitalizarlo.
// Los valores con mayúsculas y minúsculas se toman como intencionales.
func Casing(f domain.Field) Check {
	return pure("casing:"+f.Name, func(c *domain.Contact) []*domain.Problem {
		v := f.Value(c)
		if v == "" || strings.ToLower(v) != v {
			return nil
		}
		capitalized := Capitalize(v)
		if capitalized == v {
			return nil
		}
		return []*domain.Problem{domain.NewProblem(
			fmt.Sprintf("%s '%s' should be '%s'.", f.Singular, v, capitalized),
			domain.UpdateFieldFix(c.ID, f.Name, capitalized),
		)}
	})
}

// Capitalize pone en mayúscula la primera letra de cada palabra separada
// por espacios. El resto, espacios incluidos, queda igual.
func Capitalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			start = true
		case start:
			r = unicode.ToUpper(r)
			start = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
