package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/adapters/memstore"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
)

func openRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_RecordAndList(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	base := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	entries := []ports.JournalEntry{
		{Store: "json", Op: ports.OpUpdateField, ContactID: "C1", Field: "first_name", Value: "Bob", AppliedAt: base},
		{Store: "json", Op: ports.OpUpdateInfo, ContactID: "C1", Field: "phones", InfoID: "PID1",
			Attrs: map[string]string{"value": "+15550100"}, AppliedAt: base.Add(time.Second)},
		{Store: "json", Op: ports.OpDeleteInfo, ContactID: "C2", Field: "emails", InfoID: "EID1",
			Err: "not found", AppliedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Record(ctx, e))
	}

	all, err := repo.List(ctx, ports.DefaultJournalFilter())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C2", all[0].ContactID, "most recent first")
	assert.Equal(t, "not found", all[0].Err)
	assert.Equal(t, map[string]string{"value": "+15550100"}, all[1].Attrs)
	assert.Nil(t, all[2].Attrs)
	assert.True(t, all[2].AppliedAt.Equal(base))
	assert.Equal(t, ports.OpUpdateField, all[2].Op)

	byContact, err := repo.List(ctx, ports.JournalFilter{ContactID: "C1"})
	require.NoError(t, err)
	assert.Len(t, byContact, 2)

	since, err := repo.List(ctx, ports.JournalFilter{Since: base.Add(time.Second)})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	limited, err := repo.List(ctx, ports.JournalFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(3), limited[0].ID)
}

func TestRepository_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "journal.db")

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.Record(ctx, ports.JournalEntry{Store: "json", Op: ports.OpDeleteField, ContactID: "C1", Field: "note"}))
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	entries, err := reopened.List(ctx, ports.DefaultJournalFilter())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].AppliedAt.IsZero(), "applied_at defaults to now")
}

func TestStore_RecordsWrites(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New([]*domain.Contact{{
		ID: "C1", Name: "bob", FirstName: "bob", HomePage: "http://h.com",
		Phones: []domain.Info{{ID: "PID1", Label: domain.LabelMobile, Value: "555"}},
	}}, memstore.WithIDGenerator(func() string { return "NEW1" }))
	repo := openRepo(t)
	s := Wrap(inner, repo, nil)
	fixed := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.UpdateField(ctx, "C1", "first_name", "Bob"))
	require.NoError(t, s.UpdateInfo(ctx, "C1", "phones", "PID1", map[string]string{"value": "+1555"}))
	require.NoError(t, s.AddInfo(ctx, "C1", "urls", map[string]string{"label": domain.LabelHomePage, "value": "http://h.com"}))
	require.NoError(t, s.DeleteField(ctx, "C1", "home_page"))
	err := s.DeleteInfo(ctx, "C1", "emails", "EID9")
	assert.True(t, errors.IsNotFound(err), "write error is returned")

	c, err := s.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Bob", c.FirstName)
	assert.Empty(t, c.HomePage)
	require.Len(t, c.URLs, 1)
	assert.Equal(t, "NEW1", c.URLs[0].ID)

	entries, err := repo.List(ctx, ports.DefaultJournalFilter())
	require.NoError(t, err)
	require.Len(t, entries, 5)

	ops := make([]ports.MutationOp, len(entries))
	for i, e := range entries {
		ops[i] = e.Op
		assert.Equal(t, "memory", e.Store)
		assert.True(t, e.AppliedAt.Equal(fixed))
	}
	assert.Equal(t, []ports.MutationOp{
		ports.OpDeleteInfo, ports.OpDeleteField, ports.OpAddInfo, ports.OpUpdateInfo, ports.OpUpdateField,
	}, ops)
	assert.Contains(t, entries[0].Err, "not found")
	assert.Empty(t, entries[1].Err)
}

func TestStore_ReadsPassThrough(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New([]*domain.Contact{{ID: "C1", Name: "Bob"}, {ID: "C2", Name: "Alice"}})
	s := Wrap(inner, openRepo(t), nil)

	n, err := s.Count(ctx, []string{"Bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var names []string
	for c, err := range s.Find(ctx, nil) {
		require.NoError(t, err)
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Bob", "Alice"}, names)
	assert.Equal(t, "memory", s.Name())
	assert.NoError(t, s.Save(ctx), "memory store has nothing to save")
}

type failingRepo struct{ ports.JournalRepository }

func (failingRepo) Record(context.Context, ports.JournalEntry) error { return errors.New("disk full") }
func (failingRepo) Close() error                                     { return nil }

func TestStore_JournalFailure(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New([]*domain.Contact{{ID: "C1", Name: "bob"}})
	s := Wrap(inner, failingRepo{}, nil)

	err := s.UpdateField(ctx, "C1", "first_name", "Bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = s.UpdateField(ctx, "C9", "first_name", "Bob")
	assert.True(t, errors.IsNotFound(err), "write error wins over journal error")
	assert.NoError(t, s.Close())
}
