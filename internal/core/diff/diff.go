// internal/core/diff/diff.go

// Package diff calcula las escrituras al store que llevan de una foto de un
// contacto a otra. Los tests la usan para comprobar que los fixes convergen
// en un fixture y el auditor para informar qué cambió un --fix.
package diff

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"contacts/internal/core/domain"
)

// Mutation es una escritura al store. Los campos usados dependen del tipo:
//
//	scalar update: ContactID, Field, Value
//	scalar delete: ContactID, Field
//	info update:   ContactID, Field, InfoID, Attrs (changed only)
//	info add:      ContactID, Field, Attrs (all non-empty)
//	info delete:   ContactID, Field, InfoID
type Mutation struct {
	ContactID string
	Field     string
	InfoID    string
	Value     string
	Attrs     map[string]string
}

func (m Mutation) String() string {
	parts := []string{m.ContactID, m.Field}
	if m.InfoID != "" {
		parts = append(parts, m.InfoID)
	}
	if m.Value != "" {
		parts = append(parts, m.Value)
	}
	if m.Attrs != nil {
		keys := slices.Sorted(maps.Keys(m.Attrs))
		kv := make([]string, 0, len(keys))
		for _, k := range keys {
			kv = append(kv, fmt.Sprintf("%s=%q", k, m.Attrs[k]))
		}
		parts = append(parts, "{"+strings.Join(kv, ", ")+"}")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Diff agrupa las mutaciones por tipo.
type Diff struct {
	Updates []Mutation
	Adds    []Mutation
	Deletes []Mutation
}

// IsEmpty indica si las dos fotos eran equivalentes.
func (d Diff) IsEmpty() bool {
	return len(d.Updates) == 0 && len(d.Adds) == 0 && len(d.Deletes) == 0
}

// Len devuelve el total de mutaciones.
func (d Diff) Len() int {
	return len(d.Updates) + len(d.Adds) + len(d.Deletes)
}

func (d Diff) String() string {
	join := func(ms []Mutation) string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.String()
		}
		return "[" + strings.Join(out, ", ") + "]"
	}
	return "Diff(\n  updates=" + join(d.Updates) +
		"\n  adds=" + join(d.Adds) +
		"\n  deletes=" + join(d.Deletes) + "\n)"
}

// FieldHasImage es el único campo fuera del registro que se compara.
const FieldHasImage = "has_image"

// Compute recorre los campos registrados de las dos fotos, más has_image.
// id, name e is_company no se comparan nunca.
func Compute(before, after *domain.Contact) Diff {
	var d Diff
	id := before.ID
	// un bool no tiene "vacío": siempre es un update, nunca un delete
	if before.HasImage != after.HasImage {
		d.Updates = append(d.Updates, Mutation{ContactID: id, Field: FieldHasImage, Value: strconv.FormatBool(after.HasImage)})
	}
	for _, f := range domain.Fields() {
		switch f.Kind {
		case domain.FieldScalar:
			d.scalar(id, f.Name, f.Value(before), f.Value(after))
		case domain.FieldInfos:
			d.infos(id, f.Name, f.Infos(before), f.Infos(after))
		}
	}
	return d
}

func (d *Diff) scalar(contactID, field, before, after string) {
	switch {
	case after == "" && before != "":
		d.Deletes = append(d.Deletes, Mutation{ContactID: contactID, Field: field})
	case after != "" && after != before:
		d.Updates = append(d.Updates, Mutation{ContactID: contactID, Field: field, Value: after})
	}
}

func (d *Diff) infos(contactID, field string, before, after []domain.Info) {
	afterByID := make(map[string]domain.Info, len(after))
	for _, info := range after {
		afterByID[info.ID] = info
	}
	beforeIDs := make(map[string]bool, len(before))

	for _, b := range before {
		beforeIDs[b.ID] = true
		a, ok := afterByID[b.ID]
		if !ok {
			d.Deletes = append(d.Deletes, Mutation{ContactID: contactID, Field: field, InfoID: b.ID})
			continue
		}
		if changed := changedAttrs(b, a); len(changed) > 0 {
			d.Updates = append(d.Updates, Mutation{ContactID: contactID, Field: field, InfoID: b.ID, Attrs: changed})
		}
	}

	for _, a := range after {
		if !beforeIDs[a.ID] {
			d.Adds = append(d.Adds, Mutation{ContactID: contactID, Field: field, Attrs: a.NonEmptyAttrs()})
		}
	}
}

func changedAttrs(before, after domain.Info) map[string]string {
	b := before.Attrs()
	changed := map[string]string{}
	for name, v := range after.Attrs() {
		if b[name] != v {
			changed[name] = v
		}
	}
	return changed
}
