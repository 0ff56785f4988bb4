// internal/core/checks/homepage.go
package checks

import (
	"context"
	"fmt"

	"contacts/internal/core/domain"
)

// HomePage mueve el campo home page heredado a la lista de URLs.
func HomePage() Check {
	return pure("home_page", func(c *domain.Contact) []*domain.Problem {
		if c.HomePage == "" {
			return nil
		}
		id, value := c.ID, c.HomePage
		fix := func(ctx context.Context, m domain.Mutator) error {
			if err := m.AddInfo(ctx, id, domain.FieldURLs, map[string]string{
				domain.AttrLabel: domain.LabelHomePage,
				domain.AttrValue: value,
			}); err != nil {
				return err
			}
			return m.DeleteField(ctx, id, domain.FieldHomePage)
		}
		return []*domain.Problem{domain.NewProblem(
			fmt.Sprintf("Home page '%s' should be a URL.", value), fix,
		)}
	})
}
