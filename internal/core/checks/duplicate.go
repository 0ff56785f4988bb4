// internal/core/checks/duplicate.go
package checks

import (
	"cmp"
	"fmt"
	"slices"

	"contacts/internal/core/domain"
)

type dedupeField struct {
	name      string
	withLabel bool
}

// dedupeFields en orden de chequeo. Fechas, perfiles y mensajería solo son
// duplicados si además coincide la etiqueta.
var dedupeFields = []dedupeField{
	{domain.FieldPhones, false},
	{domain.FieldEmails, false},
	{domain.FieldURLs, false},
	{domain.FieldAddresses, false},
	{domain.FieldCustomDates, true},
	{domain.FieldSocialProfiles, true},
	{domain.FieldInstantMessages, true},
}

// Duplicate marca los items repetidos. Se conserva el primero de cada
// grupo, en orden de lista; el fix borra el resto.
func Duplicate() Check {
	return pure("duplicate", func(c *domain.Contact) []*domain.Problem {
		var problems []*domain.Problem
		for _, df := range dedupeFields {
			f := domain.MustField(df.name)
			for _, group := range groupDuplicates(f.Infos(c), df.withLabel) {
				ids := make([]string, 0, len(group)-1)
				for _, dup := range group[1:] {
					ids = append(ids, dup.ID)
				}
				problems = append(problems, domain.NewProblem(
					fmt.Sprintf("%s '%s' has duplicate(s).", f.Singular, group[0].Display()),
					domain.DeleteInfosFix(c.ID, f.Name, ids...),
				))
			}
		}
		return problems
	})
}

// groupDuplicates ordena (estable) los items por clave y devuelve los
// grupos de más de un miembro.
func groupDuplicates(infos []domain.Info, withLabel bool) [][]domain.Info {
	compare := func(a, b domain.Info) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 || !withLabel {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	}

	sorted := slices.Clone(infos)
	slices.SortStableFunc(sorted, compare)

	var groups [][]domain.Info
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && compare(sorted[i], sorted[j]) == 0 {
			j++
		}
		if j-i > 1 {
			groups = append(groups, sorted[i:j])
		}
		i = j
	}
	return groups
}
