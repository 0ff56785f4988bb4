// internal/core/domain/contact.go
package domain

import (
	"encoding/json"
	"slices"
)

// Contact es el agregado raíz: una persona o empresa del address book.
// Una instancia es una instantánea inmutable de lo que devolvió el store.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsCompany bool   `json:"is_company,omitempty"`
	HasImage  bool   `json:"has_image,omitempty"`

	Prefix             string `json:"prefix,omitempty"`
	FirstName          string `json:"first_name,omitempty"`
	PhoneticFirstName  string `json:"phonetic_first_name,omitempty"`
	MiddleName         string `json:"middle_name,omitempty"`
	PhoneticMiddleName string `json:"phonetic_middle_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	PhoneticLastName   string `json:"phonetic_last_name,omitempty"`
	MaidenName         string `json:"maiden_name,omitempty"`
	Suffix             string `json:"suffix,omitempty"`
	Nickname           string `json:"nickname,omitempty"`
	JobTitle           string `json:"job_title,omitempty"`
	Department         string `json:"department,omitempty"`
	Organization       string `json:"organization,omitempty"`
	Phones             []Info `json:"phones,omitempty"`
	Emails             []Info `json:"emails,omitempty"`
	HomePage           string `json:"home_page,omitempty"`
	URLs               []Info `json:"urls,omitempty"`
	Addresses          []Info `json:"addresses,omitempty"`
	BirthDate          string `json:"birth_date,omitempty"`
	CustomDates        []Info `json:"custom_dates,omitempty"`
	RelatedNames       []Info `json:"related_names,omitempty"`
	SocialProfiles     []Info `json:"social_profiles,omitempty"`
	InstantMessages    []Info `json:"instant_messages,omitempty"`
	Note               string `json:"note,omitempty"`
}

// UnmarshalJSON decodifica un snapshot y fija el kind de cada item según su campo.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type plain Contact
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Contact(p)
	c.normalizeKinds()
	return nil
}

func (c *Contact) normalizeKinds() {
	for _, f := range fields {
		if f.Kind != FieldInfos {
			continue
		}
		infos := f.Infos(c)
		for i := range infos {
			infos[i].Kind = f.InfoKind
		}
	}
}

// Clone retorna una copia profunda del contacto.
func (c *Contact) Clone() *Contact {
	out := *c
	for _, f := range fields {
		if f.Kind == FieldInfos {
			f.SetInfos(&out, slices.Clone(f.Infos(c)))
		}
	}
	return &out
}

// FindInfo retorna el item de field con ese id.
func (c *Contact) FindInfo(field, infoID string) (Info, bool) {
	f, ok := LookupField(field)
	if !ok || f.Kind != FieldInfos {
		return Info{}, false
	}
	for _, info := range f.Infos(c) {
		if info.ID == infoID {
			return info, true
		}
	}
	return Info{}, false
}

// ListIcon es el glifo junto al nombre en los listados: persona o empresa
// si el contacto tiene imagen, en blanco si no.
func (c *Contact) ListIcon() string {
	if !c.HasImage {
		return "  "
	}
	if c.IsCompany {
		return CategoryCompany.Icon()
	}
	return CategoryPerson.Icon()
}

func (c *Contact) String() string {
	return c.Name
}

// ContactCategory deriva la categoría a mostrar a partir de los problemas:
// error gana a warning; sin problemas, empresa o persona.
func ContactCategory(c *Contact, problems []*Problem) Category {
	hasWarning := false
	for _, p := range problems {
		switch p.Category() {
		case CategoryError:
			return CategoryError
		case CategoryWarning:
			hasWarning = true
		}
	}
	if hasWarning {
		return CategoryWarning
	}
	if c.IsCompany {
		return CategoryCompany
	}
	return CategoryPerson
}
