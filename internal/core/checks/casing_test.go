package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"bob", "Bob"},
		{"dr.", "Dr."},
		{"bob  baker", "Bob  Baker"},
		{"ömer", "Ömer"},
		{"", ""},
		{"jr.\tiii", "Jr.\tIii"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in), "Capitalize(%q)", tt.in)
	}
}

func TestCasing(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  []string
	}{
		{"prefix", domain.FieldPrefix, "dr.", []string{"Prefix 'dr.' should be 'Dr.'."}},
		{"first name", domain.FieldFirstName, "bob", []string{"First name 'bob' should be 'Bob'."}},
		{"job title", domain.FieldJobTitle, "head baker", []string{"Job title 'head baker' should be 'Head Baker'."}},
		{"mixed case is intentional", domain.FieldLastName, "van Buren", nil},
		{"already capitalized", domain.FieldLastName, "Balon", nil},
		{"no letters", domain.FieldSuffix, "123", nil},
		{"empty", domain.FieldDepartment, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.MustField(tt.field)
			c := &domain.Contact{ID: "C1"}
			f.SetValue(c, tt.value)

			problems := run(t, Casing(f), c)
			if tt.want == nil {
				assert.Empty(t, problems)
				return
			}
			assert.Equal(t, tt.want, messages(problems))
			assert.Equal(t, domain.CategoryWarning, problems[0].Category())

			store := fixAll(t, c, problems)
			assert.Equal(t, []diff.Mutation{{ContactID: "C1", Field: tt.field, Value: Capitalize(tt.value)}},
				store.Recorded().Updates)
		})
	}
}

func TestCasingChecks_SkipsNicknameAndOrganization(t *testing.T) {
	c := &domain.Contact{ID: "C1", Nickname: "bob baker", Organization: "bakers llc."}
	for _, chk := range CasingChecks() {
		assert.Empty(t, run(t, chk, c), chk.Name())
	}
	require.Len(t, CasingChecks(), len(casingFields))
}
