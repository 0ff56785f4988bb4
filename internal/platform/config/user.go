// internal/platform/config/user.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
)

// UserConfig es la configuración persistida del usuario.
type UserConfig struct {
	// Romanize letras con diacríticos a probar en las búsquedas (ej: "öøÑ")
	Romanize string `yaml:"romanize,omitempty"`

	// AddressFormats formato de dirección por código de país en minúsculas
	AddressFormats map[string]domain.AddressFormat `yaml:"address_formats,omitempty" validate:"omitempty,dive,keys,country_key,endkeys"`

	// MapQuestAPIKey clave del geocoder; vacía desactiva la geocodificación
	MapQuestAPIKey string `yaml:"mapquest_api_key,omitempty"`
}

var countryKey = regexp.MustCompile(`^[a-z]{2}$`)

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("semantic_field", func(fl validator.FieldLevel) bool {
		return domain.SemanticAddressField(fl.Field().String()).IsValid()
	}))
	must(v.RegisterValidation("country_key", func(fl validator.FieldLevel) bool {
		return countryKey.MatchString(fl.Field().String())
	}))
	return v
}()

// Validate comprueba claves de país y slots de los formatos.
func (c UserConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	// dive no entra en los valores del mapa: cada formato se valida aparte
	for cc, f := range c.AddressFormats {
		if err := validate.Struct(f); err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "address format %s: %v", cc, err)
		}
	}
	return nil
}

// LoadFile lee la configuración; si el archivo no existe devuelve la
// configuración vacía.
func LoadFile(path string) (UserConfig, error) {
	var cfg UserConfig
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(errors.ErrInvalidInput, "parse %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// SaveFile valida y reemplaza el archivo completo.
func SaveFile(path string, cfg UserConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "mkdir %s", filepath.Dir(path))
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// ToJSON muestra la configuración como la imprime `config --show`. Están
// todas las claves; una API key sin definir sale como null.
func (c UserConfig) ToJSON() (string, error) {
	formats := c.AddressFormats
	if formats == nil {
		formats = map[string]domain.AddressFormat{}
	}
	var key *string
	if c.MapQuestAPIKey != "" {
		key = &c.MapQuestAPIKey
	}
	out := struct {
		Romanize       string                          `json:"romanize"`
		AddressFormats map[string]domain.AddressFormat `json:"address_formats"`
		MapQuestAPIKey *string                         `json:"mapquest_api_key"`
	}{c.Romanize, formats, key}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ParseAddressFormat parsea "cc=street:street,city:county,..." en el código
// de país y su formato. Las partes no mencionadas quedan vacías, es decir,
// no se esperan.
func ParseAddressFormat(spec string) (string, domain.AddressFormat, error) {
	var f domain.AddressFormat
	cc, rest, ok := strings.Cut(strings.TrimSpace(spec), "=")
	cc = strings.ToLower(strings.TrimSpace(cc))
	if !ok || !countryKey.MatchString(cc) {
		return "", f, errors.Wrapf(errors.ErrInvalidInput, "address format %q: want cc=part:slot,...", spec)
	}
	if strings.TrimSpace(rest) == "" {
		return cc, f, nil
	}
	for _, pair := range strings.Split(rest, ",") {
		part, slot, ok := strings.Cut(strings.TrimSpace(pair), ":")
		s := domain.SemanticAddressField(strings.ToLower(strings.TrimSpace(slot)))
		if !ok || !s.IsValid() {
			return "", f, errors.Wrapf(errors.ErrInvalidInput, "address format %q: bad pair %q", spec, pair)
		}
		switch strings.ToLower(strings.TrimSpace(part)) {
		case domain.AttrStreet:
			f.Street = s
		case domain.AttrCity:
			f.City = s
		case domain.AttrState:
			f.State = s
		case domain.AttrZipCode, "zip":
			f.ZipCode = s
		default:
			return "", f, errors.Wrapf(errors.ErrInvalidInput, "address format %q: unknown part %q", spec, part)
		}
	}
	return cc, f, nil
}

// FormatAddressFormat es la inversa de ParseAddressFormat.
func FormatAddressFormat(cc string, f domain.AddressFormat) string {
	var pairs []string
	for _, p := range domain.AddressPartsInOrder {
		if slot := p.Slot(f); slot != "" {
			pairs = append(pairs, fmt.Sprintf("%s:%s", p.Attr, slot))
		}
	}
	return cc + "=" + strings.Join(pairs, ",")
}
