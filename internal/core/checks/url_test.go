package checks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
	"contacts/internal/testutil/mocks"
)

func urlContact(label, value string) *domain.Contact {
	return &domain.Contact{ID: "C1", URLs: []domain.Info{{ID: "UID1", Label: label, Value: value}}}
}

func TestURL_Value(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{" HTTP://h.com", []string{"URL ' HTTP://h.com' should be 'http://h.com'."}},
		{"https://H.com/Path?q=1", []string{"URL 'https://H.com/Path?q=1' should be 'https://h.com/Path?q=1'."}},
		{"http://bücher.de", []string{"URL 'http://bücher.de' should be 'http://xn--bcher-kva.de'."}},
		{"1.1.1.1", []string{"URL '1.1.1.1' is not valid."}},
		{"http://exam ple.com", []string{"URL 'http://exam ple.com' is not valid."}},
		{"http://localhost:8080/", nil},
		{"https://intranet/", nil},
		{"https://router.lan/", nil},
		{"http://h.com", nil},
		{"http://1.1.1.1/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			problems := run(t, URL(nil), urlContact(domain.LabelHomePage, tt.value))
			if tt.want == nil {
				assert.Empty(t, problems)
				return
			}
			assert.Equal(t, tt.want, messages(problems))
		})
	}
}

func TestURL_PrivateHostReachability(t *testing.T) {
	resolver := mocks.NewMockResolver("intranet")

	assert.Empty(t, run(t, URL(resolver), urlContact(domain.LabelHomePage, "https://intranet/")))
	assert.Equal(t, []string{"URL 'https://wiki/' is not reachable."},
		messages(run(t, URL(resolver), urlContact(domain.LabelHomePage, "https://wiki/"))))
}

func TestURL_HomeLabel(t *testing.T) {
	c := urlContact(domain.LabelHome, "http://h.com")
	problems := run(t, URL(nil), c)
	require.Equal(t, []string{"URL label for 'http://h.com' should be <_$!<HomePage>!$_>."}, messages(problems))

	store := fixAll(t, c, problems)
	assert.Equal(t, []diff.Mutation{{ContactID: "C1", Field: domain.FieldURLs, InfoID: "UID1",
		Attrs: map[string]string{"label": domain.LabelHomePage}}}, store.Recorded().Updates)
}

func TestURL_Reachability(t *testing.T) {
	resolver := mocks.NewMockResolver("h.com")

	assert.Empty(t, run(t, URL(resolver), urlContact(domain.LabelHomePage, "http://h.com")))
	assert.Equal(t, []string{"URL 'http://gone.com' is not reachable."},
		messages(run(t, URL(resolver), urlContact(domain.LabelHomePage, "http://gone.com"))))

	// IP hosts are never looked up
	assert.Empty(t, run(t, URL(resolver), urlContact(domain.LabelHomePage, "http://192.0.2.1")))
	assert.Equal(t, []string{"host:h.com", "host:gone.com"}, resolver.Queries())
}

func TestURL_ResolverFailurePropagates(t *testing.T) {
	resolver := mocks.NewMockResolver()
	resolver.Err = errors.New("timeout")
	_, err := URL(resolver).Check(context.Background(), urlContact(domain.LabelHomePage, "http://h.com"))
	assert.Error(t, err)
}
