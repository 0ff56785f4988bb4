package checks

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/core/domain"
	"contacts/internal/testutil/mocks"
)

func emailContact(values ...string) *domain.Contact {
	c := &domain.Contact{ID: "C1"}
	for i, v := range values {
		c.Emails = append(c.Emails, domain.Info{ID: "EID" + string(rune('1'+i)), Label: domain.LabelHome, Value: v})
	}
	return c
}

func TestEmail_Offline(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{" test@H.COM", []string{"E-mail ' test@H.COM' should be 'test@h.com'."}},
		{"Bob@Example.COM", []string{"E-mail 'Bob@Example.COM' should be 'Bob@example.com'."}},
		{"test@", []string{"E-mail 'test@' is not valid."}},
		{"test@localhost", []string{"E-mail 'test@localhost' is not valid."}},
		{"test@h.com", nil},
		{"bob@corp.internal", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			problems := run(t, Email(nil), emailContact(tt.value))
			if tt.want == nil {
				assert.Empty(t, problems)
				return
			}
			assert.Equal(t, tt.want, messages(problems))
		})
	}
}

func TestEmail_Fix(t *testing.T) {
	c := emailContact(" test@H.COM")
	store := fixAll(t, c, run(t, Email(nil), c))
	updates := store.Recorded().Updates
	require.Len(t, updates, 1)
	assert.Equal(t, "EID1", updates[0].InfoID)
	assert.Equal(t, map[string]string{"value": "test@h.com"}, updates[0].Attrs)
}

func TestEmail_Deliverability(t *testing.T) {
	resolver := mocks.NewMockResolver("h.com")
	resolver.Hosts["a-only.com"] = []string{"192.0.2.7"}
	resolver.MX["nomail.com"] = []*net.MX{{Host: ".", Pref: 0}}
	resolver.Hosts["nomail.com"] = []string{"192.0.2.8"}

	tests := []struct {
		value string
		valid bool
	}{
		{"test@h.com", true},
		{"test@a-only.com", true},
		{"test@nomail.com", false},
		{"test@gone.com", false},
	}
	for _, tt := range tests {
		problems := run(t, Email(resolver), emailContact(tt.value))
		if tt.valid {
			assert.Empty(t, problems, tt.value)
		} else {
			assert.Equal(t, []string{"E-mail '" + tt.value + "' is not valid."}, messages(problems))
		}
	}
}

func TestEmail_ResolverFailurePropagates(t *testing.T) {
	resolver := mocks.NewMockResolver()
	resolver.Err = errors.New("connection refused")

	_, err := Email(resolver).Check(context.Background(), emailContact("test@h.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
