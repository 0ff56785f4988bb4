package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
	"contacts/internal/platform/countries"
	"contacts/internal/testutil/mocks"
)

func eureka() domain.AddressParts {
	return domain.AddressParts{
		Street:      "1 Street",
		City:        "Eureka",
		State:       "CA",
		ZipCode:     "95501",
		Country:     "United States",
		CountryCode: "us",
	}
}

func addressContact(parts domain.AddressParts) *domain.Contact {
	return &domain.Contact{ID: "C1", Addresses: []domain.Info{
		{ID: "AID1", Label: domain.LabelHome, Value: "ADDRESS", Kind: domain.InfoAddress, Address: parts},
	}}
}

func eurekaGeocode() *domain.Geocode {
	return &domain.Geocode{Street: "1 Street", City: "Eureka", State: "CA", ZipCode: "95501", CountryCode: "us"}
}

func TestAddress_Correct(t *testing.T) {
	geo := &mocks.MockGeocoder{}
	assert.Empty(t, run(t, Address(nil, geo), mocks.Fixture(t, mocks.FixtureCorrect)))
	assert.Len(t, geo.Calls(), 3)
}

func TestAddress_Geocode(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *domain.AddressParts)
		geo    func(g *domain.Geocode)
		want   string
		attrs  map[string]string
	}{
		{
			name:   "street keeps extra lines",
			mutate: func(a *domain.AddressParts) { a.Street = "Street No 1\n#1" },
			want:   "Street 'Street No 1 #1' should be '1 Street #1'.",
			attrs:  map[string]string{"street": "1 Street\n#1"},
		},
		{
			name:   "city",
			mutate: func(a *domain.AddressParts) { a.City = "Eurek" },
			want:   "City 'Eurek' should be 'Eureka'.",
			attrs:  map[string]string{"city": "Eureka"},
		},
		{
			name:   "state",
			mutate: func(a *domain.AddressParts) { a.State = "California" },
			want:   "State 'California' should be 'CA'.",
			attrs:  map[string]string{"state": "CA"},
		},
		{
			name:  "zip code",
			geo:   func(g *domain.Geocode) { g.ZipCode = "95501-1001" },
			want:  "ZIP code '95501' should be '95501-1001'.",
			attrs: map[string]string{"zip_code": "95501-1001"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := eureka()
			if tt.mutate != nil {
				tt.mutate(&parts)
			}
			result := eurekaGeocode()
			if tt.geo != nil {
				tt.geo(result)
			}
			c := addressContact(parts)

			problems := run(t, Address(nil, &mocks.MockGeocoder{Result: result}), c)
			require.Equal(t, []string{tt.want}, messages(problems))

			store := fixAll(t, c, problems)
			assert.Equal(t, []diff.Mutation{{ContactID: "C1", Field: domain.FieldAddresses, InfoID: "AID1", Attrs: tt.attrs}},
				store.Recorded().Updates)
		})
	}
}

func TestAddress_GeocodeEmptySlotIsIgnored(t *testing.T) {
	parts := eureka()
	parts.City = "Somewhere"
	result := eurekaGeocode()
	result.City = ""

	assert.Empty(t, run(t, Address(nil, &mocks.MockGeocoder{Result: result}), addressContact(parts)))
}

func TestAddress_CannotBeGeocoded(t *testing.T) {
	problems := run(t, Address(nil, &mocks.MockGeocoder{Unresolvable: true}), addressContact(eureka()))
	assert.Equal(t, []string{"Address 'ADDRESS' cannot be geocoded."}, messages(problems))
	assert.False(t, problems[0].Fixable())
}

func TestAddress_GeocoderFailurePropagates(t *testing.T) {
	_, err := Address(nil, &mocks.MockGeocoder{Err: assert.AnError}).Check(context.Background(), addressContact(eureka()))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAddress_Formats(t *testing.T) {
	t.Run("missing part", func(t *testing.T) {
		parts := eureka()
		parts.City = ""
		problems := run(t, Address(nil, nil), addressContact(parts))
		assert.Equal(t, []string{"City for 'ADDRESS' is missing."}, messages(problems))
	})

	t.Run("part that should be removed", func(t *testing.T) {
		formats := map[string]domain.AddressFormat{
			"us": {City: domain.SemanticCity, State: domain.SemanticState, ZipCode: domain.SemanticZipCode},
		}
		c := addressContact(eureka())
		geo := &mocks.MockGeocoder{Result: eurekaGeocode()}

		problems := run(t, Address(formats, geo), c)
		require.Equal(t, []string{"Street '1 Street' should be removed."}, messages(problems))

		store := fixAll(t, c, problems)
		assert.Equal(t, map[string]string{"street": ""}, store.Recorded().Updates[0].Attrs)
	})

	t.Run("remapped slots", func(t *testing.T) {
		formats := map[string]domain.AddressFormat{
			"tr": {
				Street:  domain.SemanticStreet,
				State:   domain.SemanticCity,
				City:    domain.SemanticCounty,
				ZipCode: domain.SemanticZipCode,
			},
		}
		tr, ok := countries.ByAlpha2("tr")
		require.True(t, ok)

		parts := domain.AddressParts{
			Street:      "STREET",
			City:        "COUNTY",
			State:       "CITY",
			ZipCode:     "ZIP_CODE",
			Country:     tr.Name,
			CountryCode: "tr",
		}
		geo := &mocks.MockGeocoder{Result: &domain.Geocode{
			Street: "STREET", City: "CITY", County: "COUNTY", ZipCode: "ZIP_CODE", CountryCode: "tr",
		}}
		assert.Empty(t, run(t, Address(formats, geo), addressContact(parts)))
	})

	t.Run("empty format skips the geocoder", func(t *testing.T) {
		formats := map[string]domain.AddressFormat{"us": {}}
		parts := eureka()
		parts.Street, parts.City, parts.State, parts.ZipCode = "", "", "", ""
		geo := &mocks.MockGeocoder{}

		assert.Empty(t, run(t, Address(formats, geo), addressContact(parts)))
		assert.Empty(t, geo.Calls())
	})
}

func TestAddress_Country(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		country string
		want    []string
		attrs   []map[string]string
	}{
		{
			name: "country disagrees with code", code: "us", country: "Canada",
			want:  []string{"Country 'Canada' should be 'United States'."},
			attrs: []map[string]string{{"country": "United States"}},
		},
		{
			name: "alias", code: "us", country: "USA",
			want:  []string{"Country 'USA' should be 'United States'."},
			attrs: []map[string]string{{"country": "United States"}},
		},
		{
			name: "upper-case code", code: "US", country: "United States",
			want:  []string{"Country code 'US' should be 'us'."},
			attrs: []map[string]string{{"country_code": "us"}},
		},
		{
			name: "code derived from country", country: "United States",
			want:  []string{"Country code for 'ADDRESS' should be 'us'."},
			attrs: []map[string]string{{"country_code": "us"}},
		},
		{
			name: "country derived from code", code: "us",
			want:  []string{"Country for 'ADDRESS' should be 'United States'."},
			attrs: []map[string]string{{"country": "United States"}},
		},
		{
			name: "nothing set",
			want: []string{"Country for 'ADDRESS' is missing."},
		},
		{
			name: "unknown code without country", code: "XX",
			want: []string{"Country for 'ADDRESS' is missing."},
		},
		{
			name: "unknown code with country", code: "XX", country: "United States",
			want: []string{"Country code 'XX' is invalid.", "Country 'United States' is invalid."},
		},
		{
			name: "code as country", country: "DE",
			want: []string{"Country code for 'ADDRESS' is missing.", "Country 'DE' is invalid."},
		},
		{
			name: "lower-case country", country: "germany",
			want: []string{"Country code for 'ADDRESS' is missing.", "Country 'germany' is invalid."},
		},
		{
			name: "unknown country", country: "Atlantis",
			want: []string{"Country code for 'ADDRESS' is missing.", "Country 'Atlantis' is invalid."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := eureka()
			parts.CountryCode, parts.Country = tt.code, tt.country
			c := addressContact(parts)

			problems := run(t, Address(nil, nil), c)
			require.Equal(t, tt.want, messages(problems))

			store := fixAll(t, c, problems)
			var got []map[string]string
			for _, m := range store.Recorded().Updates {
				got = append(got, m.Attrs)
			}
			assert.Equal(t, tt.attrs, got)
		})
	}
}

func TestAddress_ProblemOrder(t *testing.T) {
	first, second := eureka(), eureka()
	first.City = ""
	second.CountryCode = "US"
	c := &domain.Contact{ID: "C1", Addresses: []domain.Info{
		{ID: "AID1", Label: domain.LabelHome, Value: "FIRST", Kind: domain.InfoAddress, Address: first},
		{ID: "AID2", Label: domain.LabelWork, Value: "SECOND", Kind: domain.InfoAddress, Address: second},
	}}
	geo := &mocks.MockGeocoder{Result: &domain.Geocode{Street: "2 Street"}}

	assert.Equal(t, []string{
		"City for 'FIRST' is missing.",
		"Street '1 Street' should be '2 Street'.",
		"Street '1 Street' should be '2 Street'.",
		"Country code 'US' should be 'us'.",
	}, messages(run(t, Address(nil, geo), c)))
}
