// internal/testutil/mocks/store.go

// Package mocks tiene los dobles de test de los ports: un store que graba
// las escrituras, un geocoder y un resolver DNS, más los fixtures.
package mocks

import (
	"context"
	"iter"
	"maps"
	"sync"

	"contacts/internal/adapters/memstore"
	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
)

// MockStore registra cada escritura con la forma de diff.Mutation. Con
// Apply activo además la aplica sobre su estado en memoria, de modo que un
// Get posterior ve el contacto arreglado.
type MockStore struct {
	*memstore.Store

	// Apply aplica las escrituras además de registrarlas
	Apply bool

	// Err si no es nil, todas las operaciones fallan con él
	Err error

	mu      sync.Mutex
	updates []diff.Mutation
	adds    []diff.Mutation
	deletes []diff.Mutation
}

// NewMockStore crea un store con copias de los contactos dados.
func NewMockStore(contacts ...*domain.Contact) *MockStore {
	return &MockStore{
		Store: memstore.New(contacts, memstore.WithName("mock"), memstore.WithIDGenerator(sequence("NEW"))),
	}
}

// Recorded devuelve las escrituras registradas.
func (m *MockStore) Recorded() diff.Diff {
	m.mu.Lock()
	defer m.mu.Unlock()
	return diff.Diff{
		Updates: append([]diff.Mutation(nil), m.updates...),
		Adds:    append([]diff.Mutation(nil), m.adds...),
		Deletes: append([]diff.Mutation(nil), m.deletes...),
	}
}

// Reset olvida las escrituras registradas.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates, m.adds, m.deletes = nil, nil, nil
}

func (m *MockStore) Count(ctx context.Context, keywords []string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Store.Count(ctx, keywords)
}

func (m *MockStore) Find(ctx context.Context, keywords []string) iter.Seq2[*domain.Contact, error] {
	if m.Err != nil {
		err := m.Err
		return func(yield func(*domain.Contact, error) bool) { yield(nil, err) }
	}
	return m.Store.Find(ctx, keywords)
}

func (m *MockStore) Get(ctx context.Context, id string) (*domain.Contact, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Store.Get(ctx, id)
}

func (m *MockStore) UpdateField(ctx context.Context, contactID, field, value string) error {
	return m.record(&m.updates, diff.Mutation{ContactID: contactID, Field: field, Value: value}, func() error {
		return m.Store.UpdateField(ctx, contactID, field, value)
	})
}

func (m *MockStore) DeleteField(ctx context.Context, contactID, field string) error {
	return m.record(&m.deletes, diff.Mutation{ContactID: contactID, Field: field}, func() error {
		return m.Store.DeleteField(ctx, contactID, field)
	})
}

func (m *MockStore) UpdateInfo(ctx context.Context, contactID, field, infoID string, attrs map[string]string) error {
	mut := diff.Mutation{ContactID: contactID, Field: field, InfoID: infoID, Attrs: maps.Clone(attrs)}
	return m.record(&m.updates, mut, func() error {
		return m.Store.UpdateInfo(ctx, contactID, field, infoID, attrs)
	})
}

func (m *MockStore) AddInfo(ctx context.Context, contactID, field string, attrs map[string]string) error {
	mut := diff.Mutation{ContactID: contactID, Field: field, Attrs: maps.Clone(attrs)}
	return m.record(&m.adds, mut, func() error {
		return m.Store.AddInfo(ctx, contactID, field, attrs)
	})
}

func (m *MockStore) DeleteInfo(ctx context.Context, contactID, field, infoID string) error {
	return m.record(&m.deletes, diff.Mutation{ContactID: contactID, Field: field, InfoID: infoID}, func() error {
		return m.Store.DeleteInfo(ctx, contactID, field, infoID)
	})
}

func (m *MockStore) record(list *[]diff.Mutation, mut diff.Mutation, apply func() error) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	*list = append(*list, mut)
	m.mu.Unlock()

	if !m.Apply {
		return nil
	}
	return apply()
}
