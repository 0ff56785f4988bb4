package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
)

func TestHomePage(t *testing.T) {
	assert.Empty(t, run(t, HomePage(), &domain.Contact{ID: "C1"}))

	c := &domain.Contact{ID: "C1", HomePage: "http://h.com"}
	problems := run(t, HomePage(), c)
	require.Equal(t, []string{"Home page 'http://h.com' should be a URL."}, messages(problems))

	store := fixAll(t, c, problems)
	got := store.Recorded()
	assert.Equal(t, []diff.Mutation{{ContactID: "C1", Field: domain.FieldURLs,
		Attrs: map[string]string{"label": domain.LabelHomePage, "value": "http://h.com"}}}, got.Adds)
	assert.Equal(t, []diff.Mutation{{ContactID: "C1", Field: domain.FieldHomePage}}, got.Deletes)
}

func TestHomePage_AddFailureKeepsField(t *testing.T) {
	c := &domain.Contact{ID: "C1", HomePage: "http://h.com"}
	problems := run(t, HomePage(), c)

	store := fixAll(t, &domain.Contact{ID: "C1"}, nil)
	store.Err = assert.AnError
	assert.ErrorIs(t, problems[0].TryFix(t.Context(), store), assert.AnError)
	assert.Empty(t, store.Recorded().Deletes)
}
