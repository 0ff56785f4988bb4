// internal/core/domain/info.go
package domain

import (
	"encoding/json"
	"sort"
	"strings"

	"contacts/internal/platform/errors"
)

// InfoKind marca la variante de un item multivalor.
type InfoKind int

const (
	InfoPlain InfoKind = iota
	InfoAddress
	InfoSocialProfile
)

func (k InfoKind) String() string {
	switch k {
	case InfoAddress:
		return "address"
	case InfoSocialProfile:
		return "social_profile"
	default:
		return "plain"
	}
}

// Nombres de atributo, como los usan la API de escritura y los snapshots.
const (
	AttrLabel          = "label"
	AttrValue          = "value"
	AttrCountryCode    = "country_code"
	AttrStreet         = "street"
	AttrCity           = "city"
	AttrState          = "state"
	AttrZipCode        = "zip_code"
	AttrCountry        = "country"
	AttrUserIdentifier = "user_identifier"
	AttrURL            = "url"
)

var kindAttrs = map[InfoKind][]string{
	InfoPlain:         {AttrLabel, AttrValue},
	InfoAddress:       {AttrLabel, AttrValue, AttrCountryCode, AttrStreet, AttrCity, AttrState, AttrZipCode, AttrCountry},
	InfoSocialProfile: {AttrLabel, AttrValue, AttrUserIdentifier, AttrURL},
}

// AddressParts son los componentes estructurados de una dirección.
type AddressParts struct {
	CountryCode string
	Street      string
	City        string
	State       string
	ZipCode     string
	Country     string
}

// SocialParts son los componentes estructurados de un perfil social.
type SocialParts struct {
	UserIdentifier string
	URL            string
}

// Info es una entrada de un campo repetido. El ID lo asigna el store;
// etiqueta, valor y las partes propias de cada kind son contenido.
type Info struct {
	ID      string
	Label   string
	Value   string
	Kind    InfoKind
	Address AddressParts
	Social  SocialParts
}

// AttrNames retorna los nombres de atributo del kind del item.
func (i Info) AttrNames() []string {
	return append([]string(nil), kindAttrs[i.Kind]...)
}

// Attr retorna un atributo por nombre.
func (i Info) Attr(name string) (string, bool) {
	switch name {
	case AttrLabel:
		return i.Label, true
	case AttrValue:
		return i.Value, true
	}
	switch i.Kind {
	case InfoAddress:
		switch name {
		case AttrCountryCode:
			return i.Address.CountryCode, true
		case AttrStreet:
			return i.Address.Street, true
		case AttrCity:
			return i.Address.City, true
		case AttrState:
			return i.Address.State, true
		case AttrZipCode:
			return i.Address.ZipCode, true
		case AttrCountry:
			return i.Address.Country, true
		}
	case InfoSocialProfile:
		switch name {
		case AttrUserIdentifier:
			return i.Social.UserIdentifier, true
		case AttrURL:
			return i.Social.URL, true
		}
	}
	return "", false
}

// Attrs retorna todos los atributos del kind, vacíos incluidos.
func (i Info) Attrs() map[string]string {
	out := make(map[string]string, len(kindAttrs[i.Kind]))
	for _, name := range kindAttrs[i.Kind] {
		v, _ := i.Attr(name)
		out[name] = v
	}
	return out
}

// NonEmptyAttrs retorna los atributos con valor.
func (i Info) NonEmptyAttrs() map[string]string {
	out := i.Attrs()
	for k, v := range out {
		if v == "" {
			delete(out, k)
		}
	}
	return out
}

// WithAttrs retorna una copia del item con esos atributos reemplazados.
func (i Info) WithAttrs(attrs map[string]string) (Info, error) {
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)

	out := i
	for _, name := range names {
		v := attrs[name]
		switch {
		case name == AttrLabel:
			out.Label = v
		case name == AttrValue:
			out.Value = v
		case i.Kind == InfoAddress && name == AttrCountryCode:
			out.Address.CountryCode = v
		case i.Kind == InfoAddress && name == AttrStreet:
			out.Address.Street = v
		case i.Kind == InfoAddress && name == AttrCity:
			out.Address.City = v
		case i.Kind == InfoAddress && name == AttrState:
			out.Address.State = v
		case i.Kind == InfoAddress && name == AttrZipCode:
			out.Address.ZipCode = v
		case i.Kind == InfoAddress && name == AttrCountry:
			out.Address.Country = v
		case i.Kind == InfoSocialProfile && name == AttrUserIdentifier:
			out.Social.UserIdentifier = v
		case i.Kind == InfoSocialProfile && name == AttrURL:
			out.Social.URL = v
		default:
			return i, errors.Wrapf(errors.ErrInvalidInput, "attribute %q on %s info", name, i.Kind)
		}
	}
	return out, nil
}

// Display retorna la forma corta del item: el valor y, si la etiqueta no
// es una de las conocidas, la etiqueta entre <>.
func (i Info) Display() string {
	if IsKnownLabel(i.Label) {
		return i.Value
	}
	label := strings.TrimSuffix(strings.TrimPrefix(i.Label, "_$!<"), ">!$_")
	return i.Value + " <" + label + ">"
}

func (i Info) String() string {
	return i.Display()
}

type infoJSON struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	Value          string `json:"value"`
	CountryCode    string `json:"country_code,omitempty"`
	Street         string `json:"street,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	ZipCode        string `json:"zip_code,omitempty"`
	Country        string `json:"country,omitempty"`
	UserIdentifier string `json:"user_identifier,omitempty"`
	URL            string `json:"url,omitempty"`
}

// MarshalJSON escribe el layout plano del snapshot.
func (i Info) MarshalJSON() ([]byte, error) {
	j := infoJSON{ID: i.ID, Label: i.Label, Value: i.Value}
	switch i.Kind {
	case InfoAddress:
		j.CountryCode = i.Address.CountryCode
		j.Street = i.Address.Street
		j.City = i.Address.City
		j.State = i.Address.State
		j.ZipCode = i.Address.ZipCode
		j.Country = i.Address.Country
	case InfoSocialProfile:
		j.UserIdentifier = i.Social.UserIdentifier
		j.URL = i.Social.URL
	}
	return json.Marshal(j)
}

// UnmarshalJSON lee el layout plano del snapshot. El kind se deduce de los
// atributos presentes; al decodificar Contact se fija según el registro.
func (i *Info) UnmarshalJSON(data []byte) error {
	var j infoJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*i = Info{
		ID:    j.ID,
		Label: j.Label,
		Value: j.Value,
		Address: AddressParts{
			CountryCode: j.CountryCode,
			Street:      j.Street,
			City:        j.City,
			State:       j.State,
			ZipCode:     j.ZipCode,
			Country:     j.Country,
		},
		Social: SocialParts{UserIdentifier: j.UserIdentifier, URL: j.URL},
	}
	switch {
	case i.Address != (AddressParts{}):
		i.Kind = InfoAddress
	case i.Social != (SocialParts{}):
		i.Kind = InfoSocialProfile
	}
	return nil
}
