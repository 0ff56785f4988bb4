// internal/adapters/vcardstore/codec.go
package vcardstore

import (
	"io"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
)

// Propiedades y parámetros propios (Apple usa los mismos nombres X-AB*).
const (
	propPhoneticFirst  = "X-PHONETIC-FIRST-NAME"
	propPhoneticMiddle = "X-PHONETIC-MIDDLE-NAME"
	propPhoneticLast   = "X-PHONETIC-LAST-NAME"
	propMaidenName     = "X-MAIDENNAME"
	propHomePage       = "X-HOMEPAGE"
	propShowAs         = "X-ABSHOWAS"
	propDate           = "X-ABDATE"
	propSocialProfile  = "X-SOCIALPROFILE"

	paramID          = "X-ID"
	paramCountryCode = "X-ABADR"
	paramUser        = "X-USER"
	paramUserID      = "X-USERID"
)

var scalarProps = []struct{ field, prop string }{
	{"phonetic_first_name", propPhoneticFirst},
	{"phonetic_middle_name", propPhoneticMiddle},
	{"phonetic_last_name", propPhoneticLast},
	{"maiden_name", propMaidenName},
	{"nickname", vcard.FieldNickname},
	{"job_title", vcard.FieldTitle},
	{"home_page", propHomePage},
	{"birth_date", vcard.FieldBirthday},
	{"note", vcard.FieldNote},
}

// plainInfoProps son los campos repetidos que se guardan como etiqueta + valor.
var plainInfoProps = []struct{ field, prop string }{
	{"phones", vcard.FieldTelephone},
	{"emails", vcard.FieldEmail},
	{"urls", vcard.FieldURL},
	{"custom_dates", propDate},
	{"related_names", vcard.FieldRelated},
	{"instant_messages", vcard.FieldIMPP},
}

// managed son las propiedades que se reescriben en cada guardado; el resto
// de la tarjeta (PHOTO, REV, CATEGORIES, ...) se conserva tal cual.
var managed = func() map[string]bool {
	m := map[string]bool{
		vcard.FieldVersion: true, vcard.FieldUID: true, vcard.FieldFormattedName: true,
		vcard.FieldName: true, vcard.FieldKind: true, vcard.FieldOrganization: true,
		vcard.FieldAddress: true, vcard.FieldAnniversary: true,
		propShowAs: true, propSocialProfile: true,
	}
	for _, p := range scalarProps {
		m[p.prop] = true
	}
	for _, p := range plainInfoProps {
		m[p.prop] = true
	}
	return m
}()

// Decode lee todas las tarjetas de r. Tarjetas e items sin id reciben un
// UUID nuevo.
func Decode(r io.Reader) ([]*domain.Contact, []vcard.Card, error) {
	var (
		contacts []*domain.Contact
		cards    []vcard.Card
	)
	dec := vcard.NewDecoder(r)
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		contacts = append(contacts, decodeCard(card))
		cards = append(cards, card)
	}
	return contacts, cards, nil
}

// Encode escribe una vCard 4.0 por contacto.
func Encode(w io.Writer, contacts []*domain.Contact) error {
	enc := vcard.NewEncoder(w)
	for _, c := range contacts {
		if err := enc.Encode(encodeCard(c, nil)); err != nil {
			return errors.Wrapf(err, "encode contact %q", c.ID)
		}
	}
	return nil
}

func decodeCard(card vcard.Card) *domain.Contact {
	c := &domain.Contact{
		ID:        card.Value(vcard.FieldUID),
		Name:      card.Value(vcard.FieldFormattedName),
		IsCompany: card.Kind() == vcard.KindOrganization || strings.EqualFold(card.Value(propShowAs), "COMPANY"),
		HasImage:  card.Get(vcard.FieldPhoto) != nil,
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	if n := card.Name(); n != nil {
		c.Prefix = n.HonorificPrefix
		c.FirstName = n.GivenName
		c.MiddleName = n.AdditionalName
		c.LastName = n.FamilyName
		c.Suffix = n.HonorificSuffix
	}
	if org := card.Value(vcard.FieldOrganization); org != "" {
		name, dept, _ := strings.Cut(org, ";")
		c.Organization = name
		c.Department = dept
	}
	for _, p := range scalarProps {
		domain.MustField(p.field).SetValue(c, card.Value(p.prop))
	}

	for _, p := range plainInfoProps {
		f := domain.MustField(p.field)
		var infos []domain.Info
		for _, field := range card[p.prop] {
			infos = append(infos, domain.Info{ID: infoID(field), Label: getLabel(field), Value: field.Value, Kind: f.InfoKind})
		}
		f.SetInfos(c, infos)
	}
	for _, field := range card[vcard.FieldAnniversary] {
		c.CustomDates = append(c.CustomDates, domain.Info{ID: infoID(field), Label: domain.LabelAnniversary, Value: field.Value})
	}

	for _, a := range card.Addresses() {
		parts := domain.AddressParts{
			CountryCode: a.Params.Get(paramCountryCode),
			Street:      a.StreetAddress,
			City:        a.Locality,
			State:       a.Region,
			ZipCode:     a.PostalCode,
			Country:     a.Country,
		}
		c.Addresses = append(c.Addresses, domain.Info{
			ID:      infoID(a.Field),
			Label:   getLabel(a.Field),
			Value:   formatAddress(parts),
			Kind:    domain.InfoAddress,
			Address: parts,
		})
	}

	for _, field := range card[propSocialProfile] {
		c.SocialProfiles = append(c.SocialProfiles, domain.Info{
			ID:     infoID(field),
			Label:  getLabel(field),
			Value:  field.Params.Get(paramUser),
			Kind:   domain.InfoSocialProfile,
			Social: domain.SocialParts{UserIdentifier: field.Params.Get(paramUserID), URL: field.Value},
		})
	}

	if c.Name == "" {
		c.Name = displayName(c)
	}
	return c
}

// encodeCard arma la tarjeta de c sobre las propiedades no gestionadas de
// base, que puede ser nil.
func encodeCard(c *domain.Contact, base vcard.Card) vcard.Card {
	card := vcard.Card{}
	for k, v := range base {
		if !managed[k] {
			card[k] = v
		}
	}

	card.SetValue(vcard.FieldVersion, "4.0")
	card.SetValue(vcard.FieldUID, c.ID)
	name := c.Name
	if name == "" {
		name = displayName(c)
	}
	card.SetValue(vcard.FieldFormattedName, name)
	if c.IsCompany {
		card.SetKind(vcard.KindOrganization)
		card.SetValue(propShowAs, "COMPANY")
	}
	card.SetName(&vcard.Name{
		HonorificPrefix: c.Prefix,
		GivenName:       c.FirstName,
		AdditionalName:  c.MiddleName,
		FamilyName:      c.LastName,
		HonorificSuffix: c.Suffix,
	})
	if c.Organization != "" || c.Department != "" {
		org := c.Organization
		if c.Department != "" {
			org += ";" + c.Department
		}
		card.SetValue(vcard.FieldOrganization, org)
	}
	for _, p := range scalarProps {
		if v := domain.MustField(p.field).Value(c); v != "" {
			card.SetValue(p.prop, v)
		}
	}

	for _, p := range plainInfoProps {
		for _, info := range domain.MustField(p.field).Infos(c) {
			card.Add(p.prop, infoField(info, info.Value))
		}
	}

	for _, info := range c.Addresses {
		f := infoField(info, "")
		if info.Address.CountryCode != "" {
			f.Params.Set(paramCountryCode, info.Address.CountryCode)
		}
		card.AddAddress(&vcard.Address{
			Field:         f,
			StreetAddress: info.Address.Street,
			Locality:      info.Address.City,
			Region:        info.Address.State,
			PostalCode:    info.Address.ZipCode,
			Country:       info.Address.Country,
		})
	}

	for _, info := range c.SocialProfiles {
		f := infoField(info, info.Social.URL)
		if info.Value != "" {
			f.Params.Set(paramUser, info.Value)
		}
		if info.Social.UserIdentifier != "" {
			f.Params.Set(paramUserID, info.Social.UserIdentifier)
		}
		card.Add(propSocialProfile, f)
	}
	return card
}

func infoField(info domain.Info, value string) *vcard.Field {
	f := &vcard.Field{Value: value, Params: vcard.Params{}}
	if info.ID != "" {
		f.Params.Set(paramID, info.ID)
	}
	setLabel(f, info.Label)
	return f
}

func infoID(f *vcard.Field) string {
	if f != nil {
		if id := f.Params.Get(paramID); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

// formatAddress muestra las partes como lo hace la libreta: calle, luego
// "ciudad estado cp" y al final el país.
func formatAddress(a domain.AddressParts) string {
	var lines []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}
	add(a.Street)
	add(strings.Join(strings.Fields(a.City+" "+a.State+" "+a.ZipCode), " "))
	add(a.Country)
	return strings.Join(lines, "\n")
}

func displayName(c *domain.Contact) string {
	if name := strings.Join(strings.Fields(strings.Join([]string{c.Prefix, c.FirstName, c.MiddleName, c.LastName, c.Suffix}, " ")), " "); name != "" {
		return name
	}
	return c.Organization
}
