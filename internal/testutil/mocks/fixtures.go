// internal/testutil/mocks/fixtures.go
package mocks

import (
	"embed"
	"encoding/json"
	"testing"

	"contacts/internal/core/domain"
)

//go:embed testdata/*.json
var fixtures embed.FS

// Fixture names.
const (
	// FixtureCorrect no tiene ningún problema
	FixtureCorrect = "correct"

	// FixtureMessy tiene un problema de cada tipo arreglable y un apodo de una palabra
	FixtureMessy = "messy"

	// FixtureCompany es una empresa con imagen
	FixtureCompany = "company"
)

// LoadFixture decodifica testdata/<name>.json.
func LoadFixture(name string) (*domain.Contact, error) {
	data, err := fixtures.ReadFile("testdata/" + name + ".json")
	if err != nil {
		return nil, err
	}
	var c domain.Contact
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Fixture es LoadFixture para tests; falla el test si no existe.
func Fixture(t testing.TB, name string) *domain.Contact {
	t.Helper()
	c, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("fixture %s: %v", name, err)
	}
	return c
}

// Fixtures carga varias fixtures en orden.
func Fixtures(t testing.TB, names ...string) []*domain.Contact {
	t.Helper()
	out := make([]*domain.Contact, 0, len(names))
	for _, name := range names {
		out = append(out, Fixture(t, name))
	}
	return out
}
