// internal/core/checks/email.go
package checks

import (
	"context"
	"fmt"
	"strings"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/validator"
)

// Email valida y normaliza los e-mails. Con resolver, el dominio además
// tiene que aceptar correo (registro MX, o un A/AAAA como MX implícito).
func Email(resolver ports.HostResolver) Check {
	return NewFunc("email", func(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error) {
		var problems []*domain.Problem
		for _, email := range c.Emails {
			normalized, err := validator.NormalizeEmail(email.Value)
			valid := err == nil
			if valid && resolver != nil {
				valid, err = deliverable(ctx, resolver, normalized[strings.LastIndexByte(normalized, '@')+1:])
				if err != nil {
					return nil, err
				}
			}
			if !valid {
				problems = append(problems, domain.NewProblem(
					fmt.Sprintf("E-mail '%s' is not valid.", email.Value), nil,
				))
				continue
			}
			if normalized == email.Value {
				continue
			}
			problems = append(problems, domain.NewProblem(
				fmt.Sprintf("E-mail '%s' should be '%s'.", email.Value, normalized),
				domain.UpdateInfoFix(c.ID, domain.FieldEmails, email.ID, map[string]string{domain.AttrValue: normalized}),
			))
		}
		return problems, nil
	})
}

func deliverable(ctx context.Context, resolver ports.HostResolver, host string) (bool, error) {
	ascii, err := validator.ASCIIDomain(host)
	if err != nil {
		return false, nil
	}

	mx, err := resolver.LookupMX(ctx, ascii)
	switch {
	case err == nil && len(mx) == 1 && mx[0].Host == ".":
		// null MX: el dominio declara que no recibe correo
		return false, nil
	case err == nil && len(mx) > 0:
		return true, nil
	case err != nil && !isNotFound(err):
		return false, err
	}

	addrs, err := resolver.LookupHost(ctx, ascii)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return len(addrs) > 0, nil
}
