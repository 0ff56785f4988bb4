// internal/core/checks/nickname.go
package checks

import (
	"fmt"
	"strings"

	"contacts/internal/core/domain"
)

// Nickname marca los apodos de una sola palabra; no hay fix automático.
func Nickname() Check {
	return pure("nickname", func(c *domain.Contact) []*domain.Problem {
		if len(strings.Fields(c.Nickname)) != 1 {
			return nil
		}
		return []*domain.Problem{domain.NewProblem(
			fmt.Sprintf("Nickname '%s' is not a full name.", c.Nickname), nil,
		)}
	})
}
