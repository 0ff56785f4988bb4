package diff

import (
	"testing"

	"contacts/internal/core/domain"
	"contacts/internal/testutil"
)

func sample() *domain.Contact {
	return &domain.Contact{
		ID:        "c1",
		Name:      "Bob Balloon",
		FirstName: "bob",
		HomePage:  "http://h.com",
		Phones: []domain.Info{
			{ID: "p1", Label: domain.LabelMobile, Value: "+15550100"},
			{ID: "p2", Label: domain.LabelMobile, Value: "+15550100"},
		},
		Addresses: []domain.Info{
			{ID: "a1", Label: domain.LabelHome, Value: "1 Street", Kind: domain.InfoAddress,
				Address: domain.AddressParts{Street: "1 Street", CountryCode: "us"}},
		},
	}
}

func TestCompute_Identity(t *testing.T) {
	c := sample()
	d := Compute(c, c.Clone())
	testutil.AssertTrue(t, d.IsEmpty(), "diff of a snapshot with itself")
	testutil.AssertEqual(t, d.Len(), 0, "no mutations")
}

func TestCompute_IgnoresIdentityFields(t *testing.T) {
	before := sample()
	after := before.Clone()
	after.Name = "Robert Balloon"
	after.IsCompany = true

	testutil.AssertTrue(t, Compute(before, after).IsEmpty(), "name and is_company are not diffed")
}

func TestCompute_HasImage(t *testing.T) {
	before := sample()
	before.HasImage = false
	after := before.Clone()
	after.HasImage = true

	testutil.AssertDeepEqual(t, Compute(before, after),
		Diff{Updates: []Mutation{{ContactID: "c1", Field: "has_image", Value: "true"}}}, "image added")
	testutil.AssertDeepEqual(t, Compute(after, before),
		Diff{Updates: []Mutation{{ContactID: "c1", Field: "has_image", Value: "false"}}}, "image removed")
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.Contact)
		want   Diff
	}{
		{
			name:   "scalar update",
			mutate: func(c *domain.Contact) { c.FirstName = "Bob" },
			want:   Diff{Updates: []Mutation{{ContactID: "c1", Field: "first_name", Value: "Bob"}}},
		},
		{
			name:   "scalar added",
			mutate: func(c *domain.Contact) { c.Prefix = "Dr." },
			want:   Diff{Updates: []Mutation{{ContactID: "c1", Field: "prefix", Value: "Dr."}}},
		},
		{
			name:   "scalar delete",
			mutate: func(c *domain.Contact) { c.HomePage = "" },
			want:   Diff{Deletes: []Mutation{{ContactID: "c1", Field: "home_page"}}},
		},
		{
			name:   "info delete",
			mutate: func(c *domain.Contact) { c.Phones = c.Phones[:1] },
			want:   Diff{Deletes: []Mutation{{ContactID: "c1", Field: "phones", InfoID: "p2"}}},
		},
		{
			name: "info add without id",
			mutate: func(c *domain.Contact) {
				c.URLs = append(c.URLs, domain.Info{ID: "new", Label: domain.LabelHomePage, Value: "http://h.com"})
			},
			want: Diff{Adds: []Mutation{{ContactID: "c1", Field: "urls",
				Attrs: map[string]string{"label": domain.LabelHomePage, "value": "http://h.com"}}}},
		},
		{
			name:   "info update lists changed attrs only",
			mutate: func(c *domain.Contact) { c.Phones[0].Label = domain.LabelWork },
			want: Diff{Updates: []Mutation{{ContactID: "c1", Field: "phones", InfoID: "p1",
				Attrs: map[string]string{"label": domain.LabelWork}}}},
		},
		{
			name: "address part cleared",
			mutate: func(c *domain.Contact) {
				c.Addresses[0].Address.Street = ""
				c.Addresses[0].Address.Country = "United States"
			},
			want: Diff{Updates: []Mutation{{ContactID: "c1", Field: "addresses", InfoID: "a1",
				Attrs: map[string]string{"street": "", "country": "United States"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := sample()
			after := before.Clone()
			tt.mutate(after)

			got := Compute(before, after)
			testutil.AssertDeepEqual(t, got, tt.want, "diff")
		})
	}
}

func TestCompute_HomePageMigration(t *testing.T) {
	before := sample()
	after := before.Clone()
	after.HomePage = ""
	after.URLs = []domain.Info{{ID: "u9", Label: domain.LabelHomePage, Value: "http://h.com"}}

	got := Compute(before, after)
	testutil.AssertLen(t, got.Adds, 1, "one add")
	testutil.AssertLen(t, got.Deletes, 1, "one delete")
	testutil.AssertEqual(t, got.Deletes[0].Field, "home_page", "home page deleted")
	testutil.AssertEqual(t, got.Adds[0].Attrs["value"], "http://h.com", "url added")
}

func TestMutation_String(t *testing.T) {
	m := Mutation{ContactID: "c1", Field: "phones", InfoID: "p1", Attrs: map[string]string{"value": "+1", "label": "x"}}
	testutil.AssertEqual(t, m.String(), `(c1, phones, p1, {label="x", value="+1"})`, "string form")

	d := Diff{Deletes: []Mutation{{ContactID: "c1", Field: "note"}}}
	testutil.AssertContains(t, d.String(), "deletes=[(c1, note)]", "diff string")
}
