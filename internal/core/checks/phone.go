// internal/core/checks/phone.go
package checks

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"

	"contacts/internal/core/domain"
)

// FormatPhone parsea un número en formato internacional y lo devuelve en
// E.164. Las letras del teclado se traducen a dígitos.
func FormatPhone(value string) (string, error) {
	num, err := phonenumbers.Parse(value, "")
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Phone exige formato E.164 en todos los teléfonos.
func Phone() Check {
	return pure("phone", func(c *domain.Contact) []*domain.Problem {
		var problems []*domain.Problem
		for _, phone := range c.Phones {
			formatted, err := FormatPhone(phone.Value)
			if err != nil {
				problems = append(problems, domain.NewProblem(
					fmt.Sprintf("Phone number '%s' is not valid.", phone.Value), nil,
				))
				continue
			}
			if formatted == phone.Value {
				continue
			}
			problems = append(problems, domain.NewProblem(
				fmt.Sprintf("Phone number '%s' should be '%s'.", phone.Value, formatted),
				domain.UpdateInfoFix(c.ID, domain.FieldPhones, phone.ID, map[string]string{domain.AttrValue: formatted}),
			))
		}
		return problems
	})
}
