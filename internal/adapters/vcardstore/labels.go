// internal/adapters/vcardstore/labels.go
package vcardstore

import (
	"slices"
	"strings"

	"github.com/emersion/go-vcard"

	"contacts/internal/core/domain"
)

// paramLabel lleva las etiquetas sin equivalente TYPE.
const paramLabel = "X-ABLABEL"

// typeOverrides son las etiquetas cuyo TYPE no es simplemente el nombre
// interior en minúsculas.
var typeOverrides = map[string][]string{
	domain.LabelMobile:   {"cell"},
	domain.LabelHomeFax:  {"home", "fax"},
	domain.LabelWorkFax:  {"work", "fax"},
	domain.LabelOtherFax: {"fax"},
}

var labelByType = func() map[string]string {
	out := map[string]string{"cell": domain.LabelMobile}
	for _, c := range domain.Categories() {
		for _, l := range c.Labels() {
			out[strings.ToLower(innerLabel(l))] = l
		}
	}
	return out
}()

// ignoredTypes no distinguen una etiqueta de otra.
var ignoredTypes = []string{"pref", "internet", "voice", "text", "x400"}

func innerLabel(label string) string {
	return strings.TrimSuffix(strings.TrimPrefix(label, "_$!<"), ">!$_")
}

// setLabel escribe label como parámetros TYPE si es una etiqueta conocida
// y como X-ABLABEL si no.
func setLabel(f *vcard.Field, label string) {
	if label == "" {
		return
	}
	if !domain.IsKnownLabel(label) {
		f.Params.Set(paramLabel, label)
		return
	}
	types, ok := typeOverrides[label]
	if !ok {
		types = []string{strings.ToLower(innerLabel(label))}
	}
	for _, t := range types {
		f.Params.Add(vcard.ParamType, t)
	}
}

// getLabel es la inversa de setLabel. Tarjetas de otras herramientas pueden
// traer varios TYPE: se reconocen las combinaciones de fax y gana el primer
// tipo conocido o, si no hay, el primero desconocido.
func getLabel(f *vcard.Field) string {
	if l := f.Params.Get(paramLabel); l != "" {
		return l
	}
	var types []string
	for _, t := range f.Params.Types() {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(ignoredTypes, t) {
			continue
		}
		types = append(types, t)
	}
	if slices.Contains(types, "fax") {
		switch {
		case slices.Contains(types, "home"):
			return domain.LabelHomeFax
		case slices.Contains(types, "work"):
			return domain.LabelWorkFax
		default:
			return domain.LabelOtherFax
		}
	}
	for _, t := range types {
		if l, ok := labelByType[t]; ok {
			return l
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}
