// internal/core/checks/customdate.go
package checks

import (
	"fmt"
	"strings"

	"contacts/internal/core/domain"
)

// CustomDate pasa a minúsculas las etiquetas libres de fechas.
func CustomDate() Check {
	return pure("custom_date", func(c *domain.Contact) []*domain.Problem {
		var problems []*domain.Problem
		for _, date := range c.CustomDates {
			if domain.FromLabel(date.Label, domain.CategoryUnknown) != domain.CategoryUnknown {
				continue
			}
			lower := strings.ToLower(date.Label)
			if lower == date.Label {
				continue
			}
			problems = append(problems, domain.NewProblem(
				fmt.Sprintf("Custom date label <%s> should be <%s>.", date.Label, lower),
				domain.UpdateInfoFix(c.ID, domain.FieldCustomDates, date.ID, map[string]string{domain.AttrLabel: lower}),
			))
		}
		return problems
	})
}
