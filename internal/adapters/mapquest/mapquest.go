// internal/adapters/mapquest/mapquest.go
package mapquest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/cache"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/httpclient"
	"contacts/internal/platform/logx"
)

// DefaultEndpoint es la API de geocoding de MapQuest.
const DefaultEndpoint = "https://www.mapquestapi.com/geocoding/v1/address"

// rawKeys mapea cada slot semántico a la clave de la respuesta de MapQuest.
var rawKeys = map[domain.SemanticAddressField]string{
	domain.SemanticStreet:       "street",
	domain.SemanticNeighborhood: "Neighborhood",
	domain.SemanticCity:         "City",
	domain.SemanticCounty:       "County",
	domain.SemanticState:        "State",
	domain.SemanticZipCode:      "postalCode",
	domain.SemanticCountry:      "Country",
}

// Options configura el geocoder.
type Options struct {
	APIKey string

	// Endpoint por defecto DefaultEndpoint
	Endpoint string

	// MinInterval tiempo mínimo entre requests (default 1s)
	MinInterval time.Duration

	// CacheSize direcciones recordadas (0 desactiva la cache)
	CacheSize int
}

// Geocoder resuelve direcciones contra MapQuest, con rate limit, retry,
// circuit breaker y cache por dirección.
type Geocoder struct {
	client   *httpclient.Client
	endpoint string
	apiKey   string
	cache    *cache.LRU[string, *domain.Geocode]
	logger   logx.Logger
}

var _ ports.Geocoder = (*Geocoder)(nil)

// New crea el geocoder. Falla si no hay API key.
func New(opts Options, logger logx.Logger) (*Geocoder, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "mapquest api key is required")
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.MinInterval == 0 {
		opts.MinInterval = time.Second
	}
	if logger == nil {
		logger = logx.NewSilent()
	}

	g := &Geocoder{
		client: httpclient.New(httpclient.Config{
			Timeout:         15 * time.Second,
			MaxRetries:      2,
			RetryBackoff:    time.Second,
			MaxRetryBackoff: 10 * time.Second,
			MinInterval:     opts.MinInterval,
			BreakerName:     "mapquest",
			BreakerFailures: 3,
		}, logger),
		endpoint: opts.Endpoint,
		apiKey:   opts.APIKey,
		logger:   logger.With("component", "mapquest"),
	}
	if opts.CacheSize > 0 {
		g.cache = cache.New[string, *domain.Geocode](opts.CacheSize, 0)
	}
	return g, nil
}

// Geocode resuelve la dirección por su valor formateado. Devuelve nil, nil
// si MapQuest no encuentra ninguna ubicación.
func (g *Geocoder) Geocode(ctx context.Context, address domain.Info) (*domain.Geocode, error) {
	query := strings.TrimSpace(address.Value)
	if query == "" {
		return nil, nil
	}
	if g.cache == nil {
		return g.lookup(ctx, query)
	}
	return g.cache.GetOrLoad(query, func() (*domain.Geocode, error) {
		return g.lookup(ctx, query)
	})
}

func (g *Geocoder) lookup(ctx context.Context, query string) (*domain.Geocode, error) {
	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("location", query)
	params.Set("maxResults", "1")

	body, err := g.client.FetchJSON(ctx, g.endpoint+"?"+params.Encode())
	if err != nil {
		return nil, errors.Wrapf(err, "geocode %q", query)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "geocode %q: %v", query, err)
	}
	if resp.Info.StatusCode != 0 {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "geocode %q: status %d: %s",
			query, resp.Info.StatusCode, strings.Join(resp.Info.Messages, "; "))
	}

	loc := resp.first()
	if loc == nil {
		g.logger.Debug("address not found", "address", query)
		return nil, nil
	}
	return toGeocode(loc), nil
}

// response es el sobre de la API; las ubicaciones mezclan strings, números
// y objetos, así que se decodifican como mapas.
type response struct {
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
	Results []struct {
		Locations []map[string]any `json:"locations"`
	} `json:"results"`
}

func (r response) first() rawLocation {
	for _, res := range r.Results {
		if len(res.Locations) > 0 {
			return res.Locations[0]
		}
	}
	return nil
}

type rawLocation map[string]any

func (l rawLocation) str(key string) string {
	if s, ok := l[key].(string); ok {
		return s
	}
	return ""
}

// value busca la clave directa y si falta recorre adminArea1..9Type.
func (l rawLocation) value(f domain.SemanticAddressField) string {
	key := rawKeys[f]
	if v := l.str(key); v != "" {
		return v
	}
	for i := 1; i <= 9; i++ {
		if l.str(fmt.Sprintf("adminArea%dType", i)) == key {
			if v := l.str(fmt.Sprintf("adminArea%d", i)); v != "" {
				return v
			}
		}
	}
	return ""
}

func toGeocode(loc rawLocation) *domain.Geocode {
	return &domain.Geocode{
		Street:       loc.value(domain.SemanticStreet),
		Neighborhood: loc.value(domain.SemanticNeighborhood),
		City:         loc.value(domain.SemanticCity),
		County:       loc.value(domain.SemanticCounty),
		State:        loc.value(domain.SemanticState),
		ZipCode:      loc.value(domain.SemanticZipCode),
		CountryCode:  loc.value(domain.SemanticCountry),
	}
}
