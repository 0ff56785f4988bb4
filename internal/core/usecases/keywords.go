// internal/core/usecases/keywords.go
package usecases

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// undecomposable son letras cuya base no se alcanza por descomposición
// canónica.
var undecomposable = map[rune]rune{
	'ø': 'o',
	'ł': 'l',
	'đ': 'd',
	'ħ': 'h',
	'ı': 'i',
	'ŧ': 't',
}

// KeywordPreparer convierte las keywords del usuario en las búsquedas
// literales que recibe el store: capitalizadas y con todas las grafías que
// permite el alfabeto de romanización configurado.
type KeywordPreparer struct {
	lower    cases.Caser
	variants map[rune][]rune
}

// NewKeywordPreparer crea un preparer para el alfabeto dado (ej: "öøÑ").
func NewKeywordPreparer(alphabet string) *KeywordPreparer {
	p := &KeywordPreparer{
		lower:    cases.Lower(language.Und),
		variants: map[rune][]rune{},
	}
	for base, vs := range Romanization(alphabet) {
		b := []rune(base)[0]
		for _, v := range vs {
			p.variants[b] = append(p.variants[b], []rune(v)[0])
		}
	}
	return p
}

// Romanization agrupa las letras del alfabeto, en minúsculas, bajo su letra
// latina base. Se ignoran las que no tienen una base de una sola letra y
// las que son su propia base.
func Romanization(alphabet string) map[string][]string {
	out := map[string][]string{}
	for _, r := range strings.ToLower(alphabet) {
		base, ok := baseLetter(r)
		if !ok || base == r {
			continue
		}
		key := string(base)
		if !slices.Contains(out[key], string(r)) {
			out[key] = append(out[key], string(r))
		}
	}
	return out
}

func baseLetter(r rune) (rune, bool) {
	if b, ok := undecomposable[r]; ok {
		return b, true
	}
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(strip, string(r))
	if err != nil {
		return 0, false
	}
	rs := []rune(s)
	if len(rs) != 1 || rs[0] > unicode.MaxASCII || !unicode.IsLetter(rs[0]) {
		return 0, false
	}
	return rs[0], true
}

// Prepare capitaliza cada palabra de cada keyword y la expande en todas sus
// variantes romanizadas. El resultado sale sin duplicados y ordenado.
func (p *KeywordPreparer) Prepare(keywords []string) []string {
	seen := map[string]bool{}
	for _, kw := range keywords {
		words := strings.Fields(kw)
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = p.capitalize(w)
		}
		for _, v := range p.expand(strings.Join(words, " ")) {
			seen[v] = true
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// capitalize pone en mayúscula solo la primera letra de la palabra y el
// resto en minúsculas: "mary-jane" queda "Mary-jane", no "Mary-Jane".
func (p *KeywordPreparer) capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToTitle(first)) + p.lower.String(word[size:])
}

// expand arma el producto cartesiano de las opciones de cada posición.
// Las variantes de una letra mayúscula van en mayúscula.
func (p *KeywordPreparer) expand(keyword string) []string {
	results := []string{""}
	for _, r := range keyword {
		options := []rune{r}
		for _, v := range p.variants[unicode.ToLower(r)] {
			if unicode.IsUpper(r) {
				v = unicode.ToUpper(v)
			}
			options = append(options, v)
		}

		next := make([]string, 0, len(results)*len(options))
		for _, prefix := range results {
			for _, o := range options {
				next = append(next, prefix+string(o))
			}
		}
		results = next
	}
	return results
}
