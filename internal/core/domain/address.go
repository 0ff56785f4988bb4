// internal/core/domain/address.go
package domain

// SemanticAddressField nombra un slot de la respuesta del geocoder.
type SemanticAddressField string

const (
	SemanticStreet       SemanticAddressField = "street"
	SemanticNeighborhood SemanticAddressField = "neighborhood"
	SemanticCity         SemanticAddressField = "city"
	SemanticCounty       SemanticAddressField = "county"
	SemanticState        SemanticAddressField = "state"
	SemanticZipCode      SemanticAddressField = "zip_code"
	SemanticCountry      SemanticAddressField = "country"
)

// SemanticAddressFields lista todos los slots válidos.
var SemanticAddressFields = []SemanticAddressField{
	SemanticStreet, SemanticNeighborhood, SemanticCity, SemanticCounty,
	SemanticState, SemanticZipCode, SemanticCountry,
}

// IsValid verifica si el campo semántico existe.
func (f SemanticAddressField) IsValid() bool {
	for _, v := range SemanticAddressFields {
		if v == f {
			return true
		}
	}
	return false
}

// Geocode es la interpretación estructurada que el geocoder da a una dirección.
type Geocode struct {
	Street       string `json:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	County       string `json:"county,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// Get retorna el valor del geocode para un slot semántico.
func (g *Geocode) Get(f SemanticAddressField) string {
	if g == nil {
		return ""
	}
	switch f {
	case SemanticStreet:
		return g.Street
	case SemanticNeighborhood:
		return g.Neighborhood
	case SemanticCity:
		return g.City
	case SemanticCounty:
		return g.County
	case SemanticState:
		return g.State
	case SemanticZipCode:
		return g.ZipCode
	case SemanticCountry:
		return g.CountryCode
	}
	return ""
}

// AddressFormat declara, para un país, qué partes de la dirección se
// esperan y qué slot del geocoder alimenta cada una. Un slot vacío indica
// que la parte no debe rellenarse.
type AddressFormat struct {
	Street  SemanticAddressField `json:"street,omitempty" yaml:"street,omitempty" validate:"omitempty,semantic_field"`
	City    SemanticAddressField `json:"city,omitempty" yaml:"city,omitempty" validate:"omitempty,semantic_field"`
	State   SemanticAddressField `json:"state,omitempty" yaml:"state,omitempty" validate:"omitempty,semantic_field"`
	ZipCode SemanticAddressField `json:"zip_code,omitempty" yaml:"zip_code,omitempty" validate:"omitempty,semantic_field"`
}

// DefaultAddressFormat espera todas las partes, cada una de su slot homónimo.
func DefaultAddressFormat() AddressFormat {
	return AddressFormat{
		Street:  SemanticStreet,
		City:    SemanticCity,
		State:   SemanticState,
		ZipCode: SemanticZipCode,
	}
}

// IsEmpty indica si el formato no mapea ninguna parte.
func (f AddressFormat) IsEmpty() bool {
	return f == AddressFormat{}
}

// AddressPart es una de las partes estructuradas que se comparan con un formato.
type AddressPart struct {
	Attr  string
	Title string
	Value func(AddressParts) string
	Slot  func(AddressFormat) SemanticAddressField
}

// AddressPartsInOrder: calle, ciudad, estado y código postal.
var AddressPartsInOrder = []AddressPart{
	{AttrStreet, "Street", func(a AddressParts) string { return a.Street }, func(f AddressFormat) SemanticAddressField { return f.Street }},
	{AttrCity, "City", func(a AddressParts) string { return a.City }, func(f AddressFormat) SemanticAddressField { return f.City }},
	{AttrState, "State", func(a AddressParts) string { return a.State }, func(f AddressFormat) SemanticAddressField { return f.State }},
	{AttrZipCode, "ZIP code", func(a AddressParts) string { return a.ZipCode }, func(f AddressFormat) SemanticAddressField { return f.ZipCode }},
}
