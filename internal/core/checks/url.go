// internal/core/checks/url.go
package checks

import (
	"context"
	"fmt"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/validator"
)

// URL revisa etiqueta y valor de cada URL. El valor tiene que parsear con
// scheme y host; con resolver, el host tiene que resolver. Si no está en
// forma canónica, el fix la normaliza.
func URL(resolver ports.HostResolver) Check {
	return NewFunc("url", func(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error) {
		var problems []*domain.Problem
		for _, u := range c.URLs {
			if u.Label == domain.LabelHome {
				problems = append(problems, domain.NewProblem(
					fmt.Sprintf("URL label for '%s' should be <%s>.", u.Value, domain.LabelHomePage),
					domain.UpdateInfoFix(c.ID, domain.FieldURLs, u.ID, map[string]string{domain.AttrLabel: domain.LabelHomePage}),
				))
			}

			p, err := checkURLValue(ctx, resolver, c.ID, u)
			if err != nil {
				return nil, err
			}
			if p != nil {
				problems = append(problems, p)
			}
		}
		return problems, nil
	})
}

func checkURLValue(ctx context.Context, resolver ports.HostResolver, contactID string, u domain.Info) (*domain.Problem, error) {
	parsed, err := validator.NormalizeURL(u.Value)
	if err != nil {
		return domain.NewProblem(fmt.Sprintf("URL '%s' is not valid.", u.Value), nil), nil
	}

	if resolver != nil && !validator.IsIP(parsed.Host) {
		if _, err := resolver.LookupHost(ctx, parsed.Host); err != nil {
			if !isNotFound(err) {
				return nil, err
			}
			return domain.NewProblem(fmt.Sprintf("URL '%s' is not reachable.", u.Value), nil), nil
		}
	}

	if parsed.Canonical == u.Value {
		return nil, nil
	}
	return domain.NewProblem(
		fmt.Sprintf("URL '%s' should be '%s'.", u.Value, parsed.Canonical),
		domain.UpdateInfoFix(contactID, domain.FieldURLs, u.ID, map[string]string{domain.AttrValue: parsed.Canonical}),
	), nil
}
