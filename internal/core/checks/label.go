// internal/core/checks/label.go
package checks

import (
	"fmt"
	"strings"

	"contacts/internal/core/domain"
)

type labelKey struct {
	field string // "" vale para cualquier campo
	label string // en minúsculas
}

// fixableLabels mapea etiquetas escritas a mano a su forma estándar. Las
// entradas de un campo concreto ganan a las genéricas.
var fixableLabels = map[labelKey]string{
	{domain.FieldPhones, "mobile"}:       domain.LabelMobile,
	{domain.FieldPhones, "mobil"}:        domain.LabelMobile,
	{domain.FieldPhones, "cep telefonu"}: domain.LabelMobile,
	{domain.FieldEmails, "email"}:        domain.LabelHome,
	{domain.FieldURLs, "home"}:           domain.LabelHomePage,
	{"", "home"}:                         domain.LabelHome,
	{"", "ev"}:                           domain.LabelHome,
	{"", "work"}:                         domain.LabelWork,
	{"", "iş"}:                           domain.LabelWork,
	{"", "school"}:                       domain.LabelSchool,
	{"", "okul"}:                         domain.LabelSchool,
}

var labelFields = []string{
	domain.FieldPhones,
	domain.FieldEmails,
	domain.FieldURLs,
	domain.FieldAddresses,
}

// CorrectLabel devuelve la etiqueta estándar para una escrita a mano.
func CorrectLabel(field, label string) (string, bool) {
	lower := strings.ToLower(label)
	if v, ok := fixableLabels[labelKey{field, lower}]; ok {
		return v, true
	}
	v, ok := fixableLabels[labelKey{"", lower}]
	return v, ok
}

// Label marca las etiquetas que no resuelven a una categoría.
func Label() Check {
	return pure("label", func(c *domain.Contact) []*domain.Problem {
		var problems []*domain.Problem
		for _, name := range labelFields {
			f := domain.MustField(name)
			for _, info := range f.Infos(c) {
				if domain.FromLabel(info.Label, domain.CategoryUnknown) != domain.CategoryUnknown {
					continue
				}
				corrected, ok := CorrectLabel(f.Name, info.Label)
				if !ok {
					problems = append(problems, domain.NewProblem(
						fmt.Sprintf("%s label <%s> is not valid.", f.Singular, info.Label), nil,
					))
					continue
				}
				problems = append(problems, domain.NewProblem(
					fmt.Sprintf("%s label <%s> should be <%s>.", f.Singular, info.Label, corrected),
					domain.UpdateInfoFix(c.ID, f.Name, info.ID, map[string]string{domain.AttrLabel: corrected}),
				))
			}
		}
		return problems
	})
}
