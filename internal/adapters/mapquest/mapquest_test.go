package mapquest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

const found = `{
  "info": {"statuscode": 0, "messages": []},
  "results": [{
    "providedLocation": {"location": "1 Infinite Loop Cupertino"},
    "locations": [{
      "street": "1 Infinite Loop",
      "adminArea6": "Monta Vista", "adminArea6Type": "Neighborhood",
      "adminArea5": "Cupertino", "adminArea5Type": "City",
      "adminArea4": "Santa Clara", "adminArea4Type": "County",
      "adminArea3": "CA", "adminArea3Type": "State",
      "adminArea1": "US", "adminArea1Type": "Country",
      "postalCode": "95014",
      "latLng": {"lat": 37.33, "lng": -122.03}
    }]
  }]
}`

func server(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "1", r.URL.Query().Get("maxResults"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGeocoder(t *testing.T, endpoint string, cacheSize int) *Geocoder {
	t.Helper()
	g, err := New(Options{APIKey: "secret", Endpoint: endpoint, MinInterval: time.Millisecond, CacheSize: cacheSize}, logx.NewSilent())
	require.NoError(t, err)
	return g
}

func address(value string) domain.Info {
	return domain.Info{ID: "a1", Value: value, Kind: domain.InfoAddress}
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Options{APIKey: "  "}, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestGeocode_MapsAdminAreas(t *testing.T) {
	var calls atomic.Int32
	srv := server(t, http.StatusOK, found, &calls)
	g := newGeocoder(t, srv.URL, 0)

	geo, err := g.Geocode(context.Background(), address("1 Infinite Loop\nCupertino"))
	require.NoError(t, err)
	assert.Equal(t, &domain.Geocode{
		Street:       "1 Infinite Loop",
		Neighborhood: "Monta Vista",
		City:         "Cupertino",
		County:       "Santa Clara",
		State:        "CA",
		ZipCode:      "95014",
		CountryCode:  "US",
	}, geo)
}

func TestGeocode_DirectKeyWins(t *testing.T) {
	loc := rawLocation{"City": "Direct", "adminArea5": "Admin", "adminArea5Type": "City"}
	assert.Equal(t, "Direct", loc.value(domain.SemanticCity))

	loc = rawLocation{"adminArea5": "", "adminArea5Type": "City", "adminArea4": "Other", "adminArea4Type": "County"}
	assert.Equal(t, "", loc.value(domain.SemanticCity), "empty admin area is skipped")
	assert.Equal(t, "Other", loc.value(domain.SemanticCounty))
}

func TestGeocode_NoLocation(t *testing.T) {
	var calls atomic.Int32
	srv := server(t, http.StatusOK, `{"info":{"statuscode":0},"results":[{"locations":[]}]}`, &calls)
	g := newGeocoder(t, srv.URL, 0)

	geo, err := g.Geocode(context.Background(), address("nowhere"))
	require.NoError(t, err)
	assert.Nil(t, geo)
}

func TestGeocode_EmptyValueSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	srv := server(t, http.StatusOK, found, &calls)
	g := newGeocoder(t, srv.URL, 0)

	geo, err := g.Geocode(context.Background(), address("   "))
	require.NoError(t, err)
	assert.Nil(t, geo)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGeocode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"api status", http.StatusOK, `{"info":{"statuscode":403,"messages":["bad key"]}}`, errors.ErrInvalidResponse},
		{"malformed body", http.StatusOK, `<html>`, errors.ErrInvalidResponse},
		{"unauthorized", http.StatusUnauthorized, ``, errors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := server(t, tt.status, tt.body, &calls)
			g := newGeocoder(t, srv.URL, 0)

			geo, err := g.Geocode(context.Background(), address("1 Street"))
			assert.Nil(t, geo)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.NotContains(t, err.Error(), "secret")
		})
	}
}

func TestGeocode_Cache(t *testing.T) {
	var calls atomic.Int32
	srv := server(t, http.StatusOK, found, &calls)
	g := newGeocoder(t, srv.URL, 8)

	for i := 0; i < 3; i++ {
		_, err := g.Geocode(context.Background(), address("1 Infinite Loop"))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())

	hits, misses := g.cache.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
}
