// internal/core/checks/address.go
package checks

import (
	"context"
	"fmt"
	"strings"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/countries"
)

// AddressCheck valida las direcciones contra el formato de su país, el
// geocoder y la tabla ISO de países.
type AddressCheck struct {
	formats  map[string]domain.AddressFormat
	geocoder ports.Geocoder
}

// Address crea el check de direcciones. Ambos argumentos pueden ser nil.
func Address(formats map[string]domain.AddressFormat, geocoder ports.Geocoder) *AddressCheck {
	return &AddressCheck{formats: formats, geocoder: geocoder}
}

func (a *AddressCheck) Name() string { return "address" }

// Check emite, en este orden: problemas estructurales de cada dirección,
// diferencias con el geocoder, problemas de código de país y de país.
func (a *AddressCheck) Check(ctx context.Context, c *domain.Contact) ([]*domain.Problem, error) {
	var problems []*domain.Problem
	for _, addr := range c.Addresses {
		problems = append(problems, a.checkValues(c.ID, addr)...)
	}
	for _, addr := range c.Addresses {
		found, err := a.checkGeocode(ctx, c.ID, addr)
		if err != nil {
			return nil, err
		}
		problems = append(problems, found...)
	}
	for _, addr := range c.Addresses {
		if p := checkCountryCode(c.ID, addr); p != nil {
			problems = append(problems, p)
		}
	}
	for _, addr := range c.Addresses {
		if p := checkCountry(c.ID, addr); p != nil {
			problems = append(problems, p)
		}
	}
	return problems, nil
}

// Format devuelve el formato configurado para el país de la dirección, o
// el de por defecto.
func (a *AddressCheck) Format(addr domain.Info) domain.AddressFormat {
	if f, ok := a.formats[strings.ToLower(addr.Address.CountryCode)]; ok {
		return f
	}
	return domain.DefaultAddressFormat()
}

func displayAddress(addr domain.Info) string {
	return strings.ReplaceAll(addr.Value, "\n", " ")
}

func updateAddress(contactID string, addr domain.Info, attr, value string) domain.Fix {
	return domain.UpdateInfoFix(contactID, domain.FieldAddresses, addr.ID, map[string]string{attr: value})
}

func (a *AddressCheck) checkValues(contactID string, addr domain.Info) []*domain.Problem {
	format := a.Format(addr)
	var missing, extra []*domain.Problem
	for _, part := range domain.AddressPartsInOrder {
		expected := part.Slot(format) != ""
		value := part.Value(addr.Address)
		switch {
		case expected && value == "":
			missing = append(missing, domain.NewProblem(
				fmt.Sprintf("%s for '%s' is missing.", part.Title, displayAddress(addr)), nil,
			))
		case !expected && value != "":
			extra = append(extra, domain.NewProblem(
				fmt.Sprintf("%s '%s' should be removed.", part.Title, value),
				updateAddress(contactID, addr, part.Attr, ""),
			))
		}
	}
	return append(missing, extra...)
}

func (a *AddressCheck) checkGeocode(ctx context.Context, contactID string, addr domain.Info) ([]*domain.Problem, error) {
	format := a.Format(addr)
	if a.geocoder == nil || format.IsEmpty() {
		return nil, nil
	}

	geo, err := a.geocoder.Geocode(ctx, addr)
	if err != nil {
		return nil, err
	}
	if geo == nil {
		return []*domain.Problem{domain.NewProblem(
			fmt.Sprintf("Address '%s' cannot be geocoded.", displayAddress(addr)), nil,
		)}, nil
	}

	var problems []*domain.Problem
	for _, part := range domain.AddressPartsInOrder {
		slot := part.Slot(format)
		if slot == "" {
			continue
		}
		want := geo.Get(slot)
		if want == "" {
			continue
		}
		have := part.Value(addr.Address)

		if part.Attr == domain.AttrStreet {
			lines := strings.Split(have, "\n")
			if lines[0] == want {
				continue
			}
			want = joinNonEmpty(append([]string{want}, lines[1:]...))
		} else if have == want {
			continue
		}

		problems = append(problems, domain.NewProblem(
			fmt.Sprintf("%s '%s' should be '%s'.", part.Title, have, want),
			updateAddress(contactID, addr, part.Attr, want),
		))
	}
	return problems, nil
}

func joinNonEmpty(lines []string) string {
	out := lines[:0:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// findCountry resuelve una dirección a (alpha-2 en minúsculas, nombre en
// inglés). Si están los dos, el código de país gana al nombre.
func findCountry(addr domain.Info) (code, name string, ok bool) {
	var c countries.Country
	switch {
	case addr.Address.CountryCode != "":
		c, ok = countries.ByAlpha2(addr.Address.CountryCode)
	case addr.Address.Country != "":
		c, ok = countries.ByName(addr.Address.Country)
	}
	if !ok {
		return "", "", false
	}
	return strings.ToLower(c.Alpha2), c.Name, true
}

func checkCountryCode(contactID string, addr domain.Info) *domain.Problem {
	code, _, ok := findCountry(addr)
	have := addr.Address.CountryCode
	switch {
	case !ok && addr.Address.Country == "":
		return nil
	case !ok && have == "":
		return domain.NewProblem(fmt.Sprintf("Country code for '%s' is missing.", displayAddress(addr)), nil)
	case !ok:
		return domain.NewProblem(fmt.Sprintf("Country code '%s' is invalid.", have), nil)
	case have == "":
		return domain.NewProblem(
			fmt.Sprintf("Country code for '%s' should be '%s'.", displayAddress(addr), code),
			updateAddress(contactID, addr, domain.AttrCountryCode, code),
		)
	case have != code:
		return domain.NewProblem(
			fmt.Sprintf("Country code '%s' should be '%s'.", have, code),
			updateAddress(contactID, addr, domain.AttrCountryCode, code),
		)
	}
	return nil
}

func checkCountry(contactID string, addr domain.Info) *domain.Problem {
	_, name, ok := findCountry(addr)
	have := addr.Address.Country
	switch {
	case !ok && have == "":
		return domain.NewProblem(fmt.Sprintf("Country for '%s' is missing.", displayAddress(addr)), nil)
	case !ok:
		return domain.NewProblem(fmt.Sprintf("Country '%s' is invalid.", have), nil)
	case have == "":
		return domain.NewProblem(
			fmt.Sprintf("Country for '%s' should be '%s'.", displayAddress(addr), name),
			updateAddress(contactID, addr, domain.AttrCountry, name),
		)
	case have != name:
		return domain.NewProblem(
			fmt.Sprintf("Country '%s' should be '%s'.", have, name),
			updateAddress(contactID, addr, domain.AttrCountry, name),
		)
	}
	return nil
}
