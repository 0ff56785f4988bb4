package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
)

func TestCustomDate(t *testing.T) {
	c := &domain.Contact{ID: "C1", CustomDates: []domain.Info{
		{ID: "DID1", Label: "Favorite", Value: "DATE"},
		{ID: "DID2", Label: "favorite", Value: "DATE2"},
		{ID: "DID3", Label: domain.LabelAnniversary, Value: "DATE3"},
	}}

	problems := run(t, CustomDate(), c)
	assert.Equal(t, []string{"Custom date label <Favorite> should be <favorite>."}, messages(problems))

	store := fixAll(t, c, problems)
	assert.Equal(t, []diff.Mutation{{ContactID: "C1", Field: domain.FieldCustomDates, InfoID: "DID1",
		Attrs: map[string]string{"label": "favorite"}}}, store.Recorded().Updates)
}
