// internal/platform/registry/helpers.go
package registry

import "time"

// Helpers para leer StoreOptions.Custom desde las factories sin repetir
// comprobaciones de nil y type assertions.

// GetStringConfig devuelve custom[key] si es un string no vacío; si no, def.
func GetStringConfig(custom map[string]interface{}, key, def string) string {
	if v, ok := custom[key].(string); ok && v != "" {
		return v
	}
	return def
}

// GetDurationConfig acepta time.Duration, nanosegundos (int64, float64) o
// un string para time.ParseDuration. Cero o negativo cuenta como ausente.
func GetDurationConfig(custom map[string]interface{}, key string, def time.Duration) time.Duration {
	var d time.Duration
	switch v := custom[key].(type) {
	case time.Duration:
		d = v
	case int64:
		d = time.Duration(v)
	case float64:
		d = time.Duration(v)
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return def
		}
		d = parsed
	default:
		return def
	}
	if d <= 0 {
		return def
	}
	return d
}
