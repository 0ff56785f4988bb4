// internal/platform/countries/countries.go

// Package countries es la tabla ISO 3166-1 que usa el check de direcciones:
// códigos alpha-2 y sus nombres cortos en inglés, sacados de CLDR.
package countries

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Country es una fila de la tabla.
type Country struct {
	Alpha2 string // mayúsculas, ej: "DE"
	Alpha3 string // mayúsculas, ej: "DEU"
	Name   string // nombre corto en inglés, ej: "Germany"
}

type table struct {
	byAlpha2 map[string]Country
	byName   map[string]Country
	list     []Country
}

var (
	once sync.Once
	tbl  *table
)

func load() *table {
	once.Do(func() {
		tbl = build()
	})
	return tbl
}

// build enumera todos los códigos de dos letras que CLDR reconoce como país.
func build() *table {
	t := &table{
		byAlpha2: make(map[string]Country),
		byName:   make(map[string]Country),
	}
	namer := display.English.Regions()

	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			code := string([]rune{a, b})
			r, err := language.ParseRegion(code)
			if err != nil || r.String() != code || !r.IsCountry() {
				continue
			}
			name := namer.Name(r)
			if name == "" || name == code {
				continue
			}
			c := Country{Alpha2: code, Alpha3: r.ISO3(), Name: name}
			t.byAlpha2[code] = c
			t.byName[name] = c
			t.list = append(t.list, c)
		}
	}
	sort.Slice(t.list, func(i, j int) bool { return t.list[i].Alpha2 < t.list[j].Alpha2 })
	return t
}

// ByAlpha2 busca un país por su código de dos letras, sin distinguir
// mayúsculas.
func ByAlpha2(code string) (Country, bool) {
	c, ok := load().byAlpha2[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// ByName busca un país por su nombre corto en inglés, tal cual. "germany"
// o "DE" no son nombres: el check los marca como inválidos.
func ByName(name string) (Country, bool) {
	c, ok := load().byName[name]
	return c, ok
}

// All devuelve la tabla ordenada por código alpha-2.
func All() []Country {
	return append([]Country(nil), load().list...)
}
