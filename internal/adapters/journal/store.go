// internal/adapters/journal/store.go

// Package journal records every write a ContactStore receives in a SQLite
// table, so that `contacts journal` can show what a --fix run changed.
package journal

import (
	"context"
	"iter"
	"maps"
	"time"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// Store decora un ContactStore. Las lecturas pasan directas; cada escritura
// se delega y después se registra, también cuando falla.
type Store struct {
	inner  ports.ContactStore
	repo   ports.JournalRepository
	now    func() time.Time
	logger logx.Logger
}

var _ ports.PersistentStore = (*Store)(nil)

// Wrap devuelve inner con journaling. El Store pasa a ser dueño de repo.
func Wrap(inner ports.ContactStore, repo ports.JournalRepository, logger logx.Logger) *Store {
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Store{
		inner:  inner,
		repo:   repo,
		now:    time.Now,
		logger: logger.With("component", "journal", "store", inner.Name()),
	}
}

func (s *Store) Name() string { return s.inner.Name() }

func (s *Store) Count(ctx context.Context, keywords []string) (int, error) {
	return s.inner.Count(ctx, keywords)
}

func (s *Store) Find(ctx context.Context, keywords []string) iter.Seq2[*domain.Contact, error] {
	return s.inner.Find(ctx, keywords)
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.inner.Get(ctx, id)
}

func (s *Store) UpdateField(ctx context.Context, contactID, field, value string) error {
	err := s.inner.UpdateField(ctx, contactID, field, value)
	return s.record(ctx, ports.JournalEntry{Op: ports.OpUpdateField, ContactID: contactID, Field: field, Value: value}, err)
}

func (s *Store) DeleteField(ctx context.Context, contactID, field string) error {
	err := s.inner.DeleteField(ctx, contactID, field)
	return s.record(ctx, ports.JournalEntry{Op: ports.OpDeleteField, ContactID: contactID, Field: field}, err)
}

func (s *Store) UpdateInfo(ctx context.Context, contactID, field, infoID string, attrs map[string]string) error {
	err := s.inner.UpdateInfo(ctx, contactID, field, infoID, attrs)
	return s.record(ctx, ports.JournalEntry{Op: ports.OpUpdateInfo, ContactID: contactID, Field: field, InfoID: infoID, Attrs: maps.Clone(attrs)}, err)
}

func (s *Store) AddInfo(ctx context.Context, contactID, field string, attrs map[string]string) error {
	err := s.inner.AddInfo(ctx, contactID, field, attrs)
	return s.record(ctx, ports.JournalEntry{Op: ports.OpAddInfo, ContactID: contactID, Field: field, Attrs: maps.Clone(attrs)}, err)
}

func (s *Store) DeleteInfo(ctx context.Context, contactID, field, infoID string) error {
	err := s.inner.DeleteInfo(ctx, contactID, field, infoID)
	return s.record(ctx, ports.JournalEntry{Op: ports.OpDeleteInfo, ContactID: contactID, Field: field, InfoID: infoID}, err)
}

// Save delega en el store decorado si éste persiste por su cuenta.
func (s *Store) Save(ctx context.Context) error {
	if p, ok := s.inner.(ports.PersistentStore); ok {
		return p.Save(ctx)
	}
	return nil
}

// Close cierra el store decorado y el journal.
func (s *Store) Close() error {
	return errors.Join(s.inner.Close(), s.repo.Close())
}

// record guarda la entrada y devuelve el error de la escritura. Un fallo del
// journal sólo se devuelve si la escritura tuvo éxito.
func (s *Store) record(ctx context.Context, e ports.JournalEntry, writeErr error) error {
	e.Store = s.inner.Name()
	e.AppliedAt = s.now()
	if writeErr != nil {
		e.Err = writeErr.Error()
	}

	// se registra aunque ctx esté cancelado
	if err := s.repo.Record(context.WithoutCancel(ctx), e); err != nil {
		s.logger.Warn("journal record failed", "op", string(e.Op), "contact", e.ContactID, "error", err.Error())
		if writeErr == nil {
			return errors.Wrapf(err, "journal %s", e.Op)
		}
	}
	if writeErr != nil {
		return writeErr
	}
	s.logger.Debug("mutation recorded", "op", string(e.Op), "contact", e.ContactID, "field", e.Field)
	return nil
}
