// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"contacts/internal/platform/errors"
)

// Options son las opciones de ejecución: defaults, luego ENV (.env
// incluido), luego flags.
type Options struct {
	// Store
	Store        string // applescript | json | vcard | memory
	Batch        int    // ids por round-trip al backend
	SnapshotPath string // archivo JSON para --store json
	VCardPath    string // archivo .vcf para --store vcard
	Osascript    string // binario osascript
	Timeout      time.Duration

	// Checks
	Network bool // comprobaciones DNS y geocoder
	Check   bool
	Fix     bool
	Detail  bool
	JSON    bool
	UI      string // pretty | plain | quiet; vacío = según la terminal

	// Persistencia
	JournalPath    string // vacío = sin journal
	ConfigPath     string
	MapQuestAPIKey string
}

// DefaultOptions retorna las opciones por defecto.
func DefaultOptions() Options {
	return Options{
		Store:        "applescript",
		Batch:        10,
		SnapshotPath: "contacts.json",
		VCardPath:    "contacts.vcf",
		Osascript:    "osascript",
		Timeout:      2 * time.Minute,
		Network:      true,
		ConfigPath:   DefaultConfigPath(),
	}
}

// DefaultConfigPath es <user config dir>/contacts/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "contacts", "config.yaml")
}

// LoadOptions aplica defaults y ENV. Un .env en el directorio actual se
// carga si existe; las variables ya definidas no se pisan.
func LoadOptions() (Options, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Options{}, errors.Wrap(err, "load .env")
	}
	opts := DefaultOptions()
	loadFromEnv(&opts)
	opts.Normalize()
	return opts, nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(o *Options) {
	if v := getenv("CONTACTS_STORE", ""); v != "" {
		o.Store = v
	}
	if v := getenv("CONTACTS_BATCH", ""); v != "" {
		o.Batch = parseInt(v, o.Batch)
	}
	if v := getenv("CONTACTS_NETWORK", ""); v != "" {
		o.Network = parseBool(v)
	}
	if v := getenv("CONTACTS_SNAPSHOT", ""); v != "" {
		o.SnapshotPath = v
	}
	if v := getenv("CONTACTS_VCARD", ""); v != "" {
		o.VCardPath = v
	}
	if v := getenv("CONTACTS_TIMEOUT", ""); v != "" {
		o.Timeout = time.Duration(parseInt(v, int(o.Timeout.Seconds()))) * time.Second
	}
	if v := getenv("CONTACTS_CONFIG", ""); v != "" {
		o.ConfigPath = v
	}
	if v := getenv("CONTACTS_JOURNAL", ""); v != "" {
		o.JournalPath = v
	}
	if v := getenv("CONTACTS_MAPQUEST_API_KEY", ""); v != "" {
		o.MapQuestAPIKey = v
	}
	if v := getenv("CONTACTS_UI", ""); v != "" {
		o.UI = v
	}
}

// BindFlags registra los flags de ejecución sobre fs, usando los valores
// actuales de o como defaults.
func BindFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVar(&o.Store, "store", o.Store, "Backend de contactos: applescript, json, vcard, memory")
	fs.IntVarP(&o.Batch, "batch", "b", o.Batch, "Contactos por round-trip al backend")
	fs.StringVar(&o.SnapshotPath, "snapshot", o.SnapshotPath, "Archivo JSON para --store json")
	fs.StringVar(&o.VCardPath, "vcard", o.VCardPath, "Archivo vCard para --store vcard")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Timeout por llamada a osascript")

	fs.BoolVar(&o.Network, "network", o.Network, "Comprobar DNS y geocodificar direcciones")
	fs.BoolVarP(&o.Check, "check", "c", o.Check, "Revisar los contactos")
	fs.BoolVarP(&o.Fix, "fix", "f", o.Fix, "Arreglar los problemas que tengan fix")
	fs.BoolVarP(&o.Detail, "detail", "d", o.Detail, "Mostrar todos los campos")
	fs.BoolVar(&o.JSON, "json", o.JSON, "Volcar los contactos como JSON")
	fs.StringVar(&o.UI, "ui", o.UI, "Salida: pretty, plain o quiet (por defecto según la terminal)")

	fs.StringVar(&o.JournalPath, "journal", o.JournalPath, "Base SQLite donde registrar las escrituras")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "Archivo de configuración")
}

// Normalize ajusta valores fuera de rango.
func (o *Options) Normalize() {
	o.Store = strings.ToLower(strings.TrimSpace(o.Store))
	if o.Store == "" {
		o.Store = "applescript"
	}
	o.UI = strings.ToLower(strings.TrimSpace(o.UI))
	if o.Batch < 1 {
		o.Batch = 1
	}
	if o.Timeout < 0 {
		o.Timeout = 0
	}
	if o.Fix {
		o.Check = true
	}
	if o.ConfigPath == "" {
		o.ConfigPath = DefaultConfigPath()
	}
}

// StorePath devuelve el archivo del store elegido, si usa uno.
func (o Options) StorePath() string {
	switch o.Store {
	case "json":
		return o.SnapshotPath
	case "vcard":
		return o.VCardPath
	}
	return ""
}

// NeedsDetail indica si hace falta la proyección completa de cada contacto.
func (o Options) NeedsDetail() bool {
	return o.Check || o.Fix || o.Detail || o.JSON
}

// ToJSON serializa las opciones a JSON (útil para debugging).
func (o Options) ToJSON() (string, error) {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
