package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"contacts/internal/core/domain"
	"contacts/internal/testutil/mocks"
)

func messages(problems []*domain.Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Message)
	}
	return out
}

// run executes a single check and fails the test on a check error.
func run(t *testing.T, chk Check, c *domain.Contact) []*domain.Problem {
	t.Helper()
	problems, err := chk.Check(context.Background(), c)
	require.NoError(t, err)
	return problems
}

// fixAll applies every fix against a recording store and returns what was
// written.
func fixAll(t *testing.T, c *domain.Contact, problems []*domain.Problem) *mocks.MockStore {
	t.Helper()
	store := mocks.NewMockStore(c)
	for _, p := range problems {
		require.NoError(t, p.TryFix(context.Background(), store))
	}
	return store
}
