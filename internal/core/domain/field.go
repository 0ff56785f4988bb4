// internal/core/domain/field.go
package domain

import "contacts/internal/platform/errors"

// FieldKind distingue los campos escalares de las listas de items.
type FieldKind int

const (
	FieldScalar FieldKind = iota
	FieldInfos
)

// Nombres de campo tal como viajan entre stores y snapshots.
const (
	FieldPrefix             = "prefix"
	FieldFirstName          = "first_name"
	FieldPhoneticFirstName  = "phonetic_first_name"
	FieldMiddleName         = "middle_name"
	FieldPhoneticMiddleName = "phonetic_middle_name"
	FieldLastName           = "last_name"
	FieldPhoneticLastName   = "phonetic_last_name"
	FieldMaidenName         = "maiden_name"
	FieldSuffix             = "suffix"
	FieldNickname           = "nickname"
	FieldJobTitle           = "job_title"
	FieldDepartment         = "department"
	FieldOrganization       = "organization"
	FieldPhones             = "phones"
	FieldEmails             = "emails"
	FieldHomePage           = "home_page"
	FieldURLs               = "urls"
	FieldAddresses          = "addresses"
	FieldBirthDate          = "birth_date"
	FieldCustomDates        = "custom_dates"
	FieldRelatedNames       = "related_names"
	FieldSocialProfiles     = "social_profiles"
	FieldInstantMessages    = "instant_messages"
	FieldNote               = "note"
)

// Field describe un campo del contacto: nombres para mostrar, categoría y
// accessors. Según Kind, está puesto scalar o infos, nunca los dos.
type Field struct {
	Name     string
	Singular string
	Plural   string
	Category Category
	Kind     FieldKind
	InfoKind InfoKind

	scalar func(*Contact) *string
	infos  func(*Contact) *[]Info
}

// Value retorna el valor escalar del campo en c.
func (f Field) Value(c *Contact) string {
	if f.scalar == nil {
		return ""
	}
	return *f.scalar(c)
}

// SetValue asigna el valor escalar del campo en c. Vacío lo borra.
func (f Field) SetValue(c *Contact, v string) {
	if f.scalar != nil {
		*f.scalar(c) = v
	}
}

// Infos retorna la lista de items del campo en c.
func (f Field) Infos(c *Contact) []Info {
	if f.infos == nil {
		return nil
	}
	return *f.infos(c)
}

// SetInfos reemplaza la lista de items del campo en c.
func (f Field) SetInfos(c *Contact, infos []Info) {
	if f.infos != nil {
		*f.infos(c) = infos
	}
}

func scalarField(name, singular string, cat Category, get func(*Contact) *string) Field {
	return Field{Name: name, Singular: singular, Plural: singular + "s", Category: cat, Kind: FieldScalar, scalar: get}
}

func infoField(name, singular, plural string, cat Category, kind InfoKind, get func(*Contact) *[]Info) Field {
	return Field{Name: name, Singular: singular, Plural: plural, Category: cat, Kind: FieldInfos, InfoKind: kind, infos: get}
}

// fields es el registro estático, en orden de visualización.
var fields = []Field{
	scalarField(FieldPrefix, "Prefix", CategoryName, func(c *Contact) *string { return &c.Prefix }),
	scalarField(FieldFirstName, "First name", CategoryName, func(c *Contact) *string { return &c.FirstName }),
	scalarField(FieldPhoneticFirstName, "Phonetic first name", CategoryName, func(c *Contact) *string { return &c.PhoneticFirstName }),
	scalarField(FieldMiddleName, "Middle name", CategoryName, func(c *Contact) *string { return &c.MiddleName }),
	scalarField(FieldPhoneticMiddleName, "Phonetic middle name", CategoryName, func(c *Contact) *string { return &c.PhoneticMiddleName }),
	scalarField(FieldLastName, "Last name", CategoryName, func(c *Contact) *string { return &c.LastName }),
	scalarField(FieldPhoneticLastName, "Phonetic last name", CategoryName, func(c *Contact) *string { return &c.PhoneticLastName }),
	scalarField(FieldMaidenName, "Maiden name", CategoryName, func(c *Contact) *string { return &c.MaidenName }),
	scalarField(FieldSuffix, "Suffix", CategoryName, func(c *Contact) *string { return &c.Suffix }),
	scalarField(FieldNickname, "Nickname", CategoryName, func(c *Contact) *string { return &c.Nickname }),
	scalarField(FieldJobTitle, "Job title", CategoryWork, func(c *Contact) *string { return &c.JobTitle }),
	scalarField(FieldDepartment, "Department", CategoryWork, func(c *Contact) *string { return &c.Department }),
	scalarField(FieldOrganization, "Organization", CategoryWork, func(c *Contact) *string { return &c.Organization }),
	infoField(FieldPhones, "Phone", "Phones", CategoryPhone, InfoPlain, func(c *Contact) *[]Info { return &c.Phones }),
	infoField(FieldEmails, "E-mail", "E-mails", CategoryEmail, InfoPlain, func(c *Contact) *[]Info { return &c.Emails }),
	scalarField(FieldHomePage, "Home page", CategoryURL, func(c *Contact) *string { return &c.HomePage }),
	infoField(FieldURLs, "URL", "URLs", CategoryURL, InfoPlain, func(c *Contact) *[]Info { return &c.URLs }),
	infoField(FieldAddresses, "Address", "Addresses", CategoryAddress, InfoAddress, func(c *Contact) *[]Info { return &c.Addresses }),
	scalarField(FieldBirthDate, "Birth date", CategoryDate, func(c *Contact) *string { return &c.BirthDate }),
	infoField(FieldCustomDates, "Custom date", "Custom dates", CategoryDate, InfoPlain, func(c *Contact) *[]Info { return &c.CustomDates }),
	infoField(FieldRelatedNames, "Related name", "Related names", CategoryRelated, InfoPlain, func(c *Contact) *[]Info { return &c.RelatedNames }),
	infoField(FieldSocialProfiles, "Social profile", "Social profiles", CategoryURL, InfoSocialProfile, func(c *Contact) *[]Info { return &c.SocialProfiles }),
	infoField(FieldInstantMessages, "Instant message", "Instant messages", CategoryMessaging, InfoPlain, func(c *Contact) *[]Info { return &c.InstantMessages }),
	scalarField(FieldNote, "Note", CategoryNote, func(c *Contact) *string { return &c.Note }),
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.Name] = i
	}
	return m
}()

// Fields retorna el registro en orden de visualización.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

// LookupField retorna la entrada del registro para name.
func LookupField(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// MustField es LookupField con panic si falta.
// Para nombres conocidos en compilación.
func MustField(name string) Field {
	f, ok := LookupField(name)
	if !ok {
		panic("domain: unknown field " + name)
	}
	return f
}

// RequireField es LookupField con un error que envuelve ErrUnknownField.
func RequireField(name string, kind FieldKind) (Field, error) {
	f, ok := LookupField(name)
	if !ok || f.Kind != kind {
		return Field{}, errors.Wrapf(errors.ErrUnknownField, "%q", name)
	}
	return f, nil
}
