// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"contacts/internal/platform/errors"
)

// lookup es el perfil IDNA usado para hosts de URLs y dominios de e-mail.
var lookup = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(true),
	idna.Transitional(false),
)

// Domain validators

// NormalizeDomain convierte un dominio (posiblemente IDN) a su forma
// canónica en minúsculas, sin punto final. Falla si no es un nombre válido.
func NormalizeDomain(domain string) (string, error) {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if domain == "" || len(domain) > 253 {
		return "", errors.Wrapf(errors.ErrInvalidInput, "domain %q", domain)
	}
	ascii, err := lookup.ToASCII(domain)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "domain %q: %v", domain, err)
	}
	uni, err := lookup.ToUnicode(ascii)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "domain %q: %v", domain, err)
	}
	return uni, nil
}

// ASCIIDomain devuelve la forma ASCII (punycode) de un dominio, la que
// entiende el DNS.
func ASCIIDomain(domain string) (string, error) {
	return lookup.ToASCII(domain)
}

// Email validators

// atext specials allowed unquoted in a dot-atom local part (RFC 5322).
const atextSpecials = "!#$%&'*+-/=?^_`{|}~"

// NormalizeEmail valida la sintaxis de un e-mail y devuelve su forma
// canónica: parte local intacta, dominio en minúsculas y normalizado IDNA.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "", errors.Wrapf(errors.ErrInvalidInput, "e-mail %q: missing @", email)
	}
	local, domain := email[:at], email[at+1:]

	if !isDotAtom(local) {
		return "", errors.Wrapf(errors.ErrInvalidInput, "e-mail %q: bad local part", email)
	}
	if IsIP(strings.Trim(domain, "[]")) {
		return "", errors.Wrapf(errors.ErrInvalidInput, "e-mail %q: address literal", email)
	}
	norm, err := NormalizeDomain(domain)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "e-mail %q: bad domain", email)
	}
	// un dominio de un solo label no es entregable desde fuera
	if !strings.Contains(norm, ".") {
		return "", errors.Wrapf(errors.ErrInvalidInput, "e-mail %q: single-label domain", email)
	}

	out := local + "@" + norm
	if len(out) > 254 {
		return "", errors.Wrapf(errors.ErrInvalidInput, "e-mail %q: too long", email)
	}
	return out, nil
}

func isDotAtom(s string) bool {
	if s == "" || len(s) > 64 || !utf8.ValidString(s) {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	for _, r := range s {
		switch {
		case r == '.':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(atextSpecials, r):
		case r > utf8.RuneSelf && r != utf8.RuneError:
		default:
			return false
		}
	}
	return true
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// URL validators

// ParsedURL es el resultado de NormalizeURL.
type ParsedURL struct {
	// Canonical es la URL con scheme y host normalizados
	Canonical string

	// Host es el host sin puerto, listo para resolver
	Host string
}

// NormalizeURL parsea una URL y la devuelve en forma canónica: scheme en
// minúsculas, host en minúsculas y en ASCII (IDNA), el resto tal cual.
// Falla si falta el scheme o el host, o si el host no es un nombre IDNA
// válido. Si el host existe lo decide el resolver, no esta función.
func NormalizeURL(raw string) (ParsedURL, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil {
		return ParsedURL{}, errors.Wrapf(errors.ErrInvalidInput, "url %q: %v", raw, err)
	}
	if parsed.Scheme == "" || parsed.Hostname() == "" {
		return ParsedURL{}, errors.Wrapf(errors.ErrInvalidInput, "url %q: missing scheme or host", raw)
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)

	hostname, port := parsed.Hostname(), parsed.Port()
	if !IsIP(hostname) {
		ascii, err := lookup.ToASCII(strings.TrimSuffix(hostname, "."))
		if err != nil {
			return ParsedURL{}, errors.Wrapf(errors.ErrInvalidInput, "url %q: bad host", raw)
		}
		hostname = ascii
	}

	host := hostname
	if strings.Contains(hostname, ":") {
		host = "[" + hostname + "]"
	}
	if port != "" {
		host += ":" + port
	}
	parsed.Host = host

	return ParsedURL{Canonical: parsed.String(), Host: hostname}, nil
}
