// internal/core/domain/category.go
package domain

// Category clasifica semánticamente un campo, una etiqueta o un contacto.
type Category string

const (
	// CategoryUnknown es el marcador para etiquetas sin categoría conocida.
	CategoryUnknown Category = ""

	CategoryPerson      Category = "person"
	CategoryCompany     Category = "company"
	CategoryName        Category = "name"
	CategoryPhonetic    Category = "phonetic"
	CategoryDate        Category = "date"
	CategoryPhone       Category = "phone"
	CategoryEmail       Category = "email"
	CategoryURL         Category = "url"
	CategoryMessaging   Category = "messaging"
	CategoryAddress     Category = "address"
	CategoryMobile      Category = "mobile"
	CategoryHome        Category = "home"
	CategoryWork        Category = "work"
	CategorySchool      Category = "school"
	CategoryFax         Category = "fax"
	CategoryPager       Category = "pager"
	CategoryAnniversary Category = "anniversary"
	CategoryRelated     Category = "related"
	CategoryNote        Category = "note"
	CategoryOther       Category = "other"
	CategoryWarning     Category = "warning"
	CategoryError       Category = "error"
)

// Etiquetas crudas que escribe la libreta para los tipos conocidos.
const (
	LabelMobile      = "_$!<Mobile>!$_"
	LabelHome        = "_$!<Home>!$_"
	LabelMain        = "_$!<Main>!$_"
	LabelHomePage    = "_$!<HomePage>!$_"
	LabelWork        = "_$!<Work>!$_"
	LabelSchool      = "_$!<School>!$_"
	LabelHomeFax     = "_$!<HomeFAX>!$_"
	LabelWorkFax     = "_$!<WorkFAX>!$_"
	LabelOtherFax    = "_$!<OtherFAX>!$_"
	LabelPager       = "_$!<Pager>!$_"
	LabelAnniversary = "_$!<Anniversary>!$_"
	LabelOther       = "_$!<Other>!$_"
)

type categoryInfo struct {
	category Category
	icon     string
	labels   []string
}

// categories va en orden de resolución; FromLabel retorna la primera que coincide.
var categories = []categoryInfo{
	{CategoryPerson, "👤", nil},
	{CategoryCompany, "🏢", nil},
	{CategoryName, "🔖", nil},
	{CategoryPhonetic, "🔉", nil},
	{CategoryDate, "📅", nil},
	{CategoryPhone, "📞", nil},
	{CategoryEmail, "📧", nil},
	{CategoryURL, "🌐", nil},
	{CategoryMessaging, "💬", nil},
	{CategoryAddress, "📫", nil},
	{CategoryMobile, "📱", []string{LabelMobile}},
	{CategoryHome, "🏠", []string{LabelHome, LabelMain, LabelHomePage}},
	{CategoryWork, "💼", []string{LabelWork}},
	{CategorySchool, "🏫", []string{LabelSchool}},
	{CategoryFax, "📠", []string{LabelHomeFax, LabelWorkFax, LabelOtherFax}},
	{CategoryPager, "📟", []string{LabelPager}},
	{CategoryAnniversary, "💍", []string{LabelAnniversary}},
	{CategoryRelated, "👥", nil},
	{CategoryNote, "📋", nil},
	{CategoryOther, "🗂️", []string{LabelOther}},
	{CategoryWarning, "⚠️ ", nil},
	{CategoryError, "⛔", nil},
}

var categoryIndex = func() map[Category]int {
	m := make(map[Category]int, len(categories))
	for i, c := range categories {
		m[c.category] = i
	}
	return m
}()

// Categories retorna todas las categorías en orden de declaración.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.category
	}
	return out
}

// IsValid verifica si la categoría pertenece a la enumeración.
func (c Category) IsValid() bool {
	_, ok := categoryIndex[c]
	return ok
}

// String retorna la representación string de la categoría.
func (c Category) String() string {
	if c == CategoryUnknown {
		return "unknown"
	}
	return string(c)
}

// Icon retorna el glifo usado al mostrar la categoría.
func (c Category) Icon() string {
	if i, ok := categoryIndex[c]; ok {
		return categories[i].icon
	}
	return ""
}

// Labels retorna las etiquetas crudas reconocidas por la categoría.
func (c Category) Labels() []string {
	if i, ok := categoryIndex[c]; ok {
		return append([]string(nil), categories[i].labels...)
	}
	return nil
}

// FromLabel resuelve una etiqueta cruda a la primera categoría, en orden de
// declaración, que la reconoce. Si ninguna la reconoce, retorna def.
func FromLabel(label string, def Category) Category {
	for _, c := range categories {
		for _, l := range c.labels {
			if l == label {
				return c.category
			}
		}
	}
	return def
}

// IsKnownLabel indica si label pertenece a alguna categoría de etiquetas.
func IsKnownLabel(label string) bool {
	return FromLabel(label, CategoryUnknown) != CategoryUnknown
}
