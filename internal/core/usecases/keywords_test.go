package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepare_TitleCase(t *testing.T) {
	p := NewKeywordPreparer("")
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"amelia", "bob"}, []string{"Amelia", "Bob"}},
		{[]string{"bob", "amelia"}, []string{"Amelia", "Bob"}},
		{[]string{"carnival balloon"}, []string{"Carnival Balloon"}},
		{[]string{"  carnival   BALLOON "}, []string{"Carnival Balloon"}},
		{[]string{"bob", "BOB"}, []string{"Bob"}},
		{[]string{"mary-jane"}, []string{"Mary-jane"}},
		{[]string{"O'NEIL"}, []string{"O'neil"}},
		{[]string{"émile zola"}, []string{"Émile Zola"}},
		{[]string{"", " "}, []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Prepare(tt.in), "%q", tt.in)
	}
}

func TestRomanization(t *testing.T) {
	assert.Equal(t, map[string][]string{"n": {"ñ"}, "o": {"ö", "ø"}}, Romanization("öøÑ"))
	assert.Equal(t, map[string][]string{"c": {"ç"}, "g": {"ğ"}, "i": {"ı"}, "s": {"ş"}, "u": {"ü"}},
		Romanization("çğışüÇ"))
	assert.Empty(t, Romanization("abc"))
	assert.Empty(t, Romanization(""))
}

func TestPrepare_Romanize(t *testing.T) {
	p := NewKeywordPreparer("öøÑ")

	for _, kw := range []string{"BOB", "BoB", "bob"} {
		assert.ElementsMatch(t, []string{"Bob", "Böb", "Bøb"}, p.Prepare([]string{kw}), kw)
	}

	assert.ElementsMatch(t, []string{
		"Balloon", "Ballooñ", "Balloön", "Balloöñ", "Balloøn", "Balloøñ",
		"Ballöon", "Ballöoñ", "Ballöön", "Ballööñ", "Ballöøn", "Ballöøñ",
		"Balløon", "Balløoñ", "Balløön", "Balløöñ", "Balløøn", "Balløøñ",
	}, p.Prepare([]string{"balloon"}))
}

func TestPrepare_UpperCaseVariants(t *testing.T) {
	p := NewKeywordPreparer("ö")
	assert.Equal(t, []string{"Oz", "Öz"}, p.Prepare([]string{"oz"}))
}
