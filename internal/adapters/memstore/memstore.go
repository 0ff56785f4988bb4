// internal/adapters/memstore/memstore.go

// Package memstore implementa ContactStore sobre una lista de contactos en
// memoria, opcionalmente persistida como snapshot JSON. Es el store detrás
// de `--store json` y el estado de los mocks de test.
package memstore

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// Store es seguro para uso concurrente; toda lectura devuelve una copia.
type Store struct {
	mu       sync.RWMutex
	name     string
	path     string
	brief    bool
	contacts []*domain.Contact
	newID    func() string
	logger   logx.Logger
}

// Option configura un Store.
type Option func(*Store)

// WithName cambia el nombre reportado por Name().
func WithName(name string) Option {
	return func(s *Store) { s.name = name }
}

// WithIDGenerator cambia la generación de ids de info (por defecto UUID v4).
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithBrief hace que Find devuelva sólo la proyección breve.
func WithBrief(brief bool) Option {
	return func(s *Store) { s.brief = brief }
}

// WithLogger fija el logger.
func WithLogger(logger logx.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New crea un store con copias de contacts.
func New(contacts []*domain.Contact, opts ...Option) *Store {
	s := &Store{
		name:     "memory",
		contacts: make([]*domain.Contact, 0, len(contacts)),
		newID:    func() string { return uuid.NewString() },
		logger:   logx.NewSilent(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store", "store", s.name)
	for _, c := range contacts {
		s.contacts = append(s.contacts, c.Clone())
	}
	return s
}

// Open carga un snapshot JSON. Si el archivo no existe el store arranca
// vacío y Save lo crea.
func Open(path string, opts ...Option) (*Store, error) {
	var contacts []*domain.Contact
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		contacts, err = Load(f)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "open %s", path)
	}

	s := New(contacts, append([]Option{WithName("json")}, opts...)...)
	s.path = path
	s.logger.Debug("snapshot loaded", "path", path, "contacts", len(contacts))
	return s, nil
}

// Load decodifica un array JSON de snapshots de contactos.
func Load(r io.Reader) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	if err := json.NewDecoder(r).Decode(&contacts); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return contacts, nil
}

func (s *Store) Name() string { return s.name }

// Count devuelve cuántos contactos coinciden con keywords.
func (s *Store) Count(ctx context.Context, keywords []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.contacts {
		if Matches(c, keywords) {
			n++
		}
	}
	return n, nil
}

// Find entrega copias de los contactos que coinciden, en orden del store.
func (s *Store) Find(ctx context.Context, keywords []string) iter.Seq2[*domain.Contact, error] {
	s.mu.RLock()
	var found []*domain.Contact
	for _, c := range s.contacts {
		if Matches(c, keywords) {
			found = append(found, c.Clone())
		}
	}
	s.mu.RUnlock()

	return func(yield func(*domain.Contact, error) bool) {
		for _, c := range found {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if s.brief {
				c = Brief(c)
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}

// Get devuelve una copia del contacto con ese id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// Contacts devuelve copias de todos los contactos.
func (s *Store) Contacts() []*domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Contact, len(s.contacts))
	for i, c := range s.contacts {
		out[i] = c.Clone()
	}
	return out
}

func (s *Store) UpdateField(ctx context.Context, contactID, field, value string) error {
	return s.mutate(ctx, contactID, func(c *domain.Contact) error {
		f, err := domain.RequireField(field, domain.FieldScalar)
		if err != nil {
			return err
		}
		f.SetValue(c, value)
		return nil
	})
}

func (s *Store) DeleteField(ctx context.Context, contactID, field string) error {
	return s.mutate(ctx, contactID, func(c *domain.Contact) error {
		f, err := domain.RequireField(field, domain.FieldScalar)
		if err != nil {
			return err
		}
		f.SetValue(c, "")
		return nil
	})
}

func (s *Store) UpdateInfo(ctx context.Context, contactID, field, infoID string, attrs map[string]string) error {
	return s.mutate(ctx, contactID, func(c *domain.Contact) error {
		f, err := domain.RequireField(field, domain.FieldInfos)
		if err != nil {
			return err
		}
		infos := f.Infos(c)
		i := slices.IndexFunc(infos, func(info domain.Info) bool { return info.ID == infoID })
		if i < 0 {
			return errors.Wrapf(errors.ErrNotFound, "%s info %q", field, infoID)
		}
		updated, err := infos[i].WithAttrs(attrs)
		if err != nil {
			return err
		}
		infos[i] = updated
		return nil
	})
}

func (s *Store) AddInfo(ctx context.Context, contactID, field string, attrs map[string]string) error {
	return s.mutate(ctx, contactID, func(c *domain.Contact) error {
		f, err := domain.RequireField(field, domain.FieldInfos)
		if err != nil {
			return err
		}
		info, err := domain.Info{ID: s.newID(), Kind: f.InfoKind}.WithAttrs(attrs)
		if err != nil {
			return err
		}
		f.SetInfos(c, append(f.Infos(c), info))
		return nil
	})
}

func (s *Store) DeleteInfo(ctx context.Context, contactID, field, infoID string) error {
	return s.mutate(ctx, contactID, func(c *domain.Contact) error {
		f, err := domain.RequireField(field, domain.FieldInfos)
		if err != nil {
			return err
		}
		infos := f.Infos(c)
		i := slices.IndexFunc(infos, func(info domain.Info) bool { return info.ID == infoID })
		if i < 0 {
			return errors.Wrapf(errors.ErrNotFound, "%s info %q", field, infoID)
		}
		f.SetInfos(c, slices.Delete(slices.Clone(infos), i, i+1))
		return nil
	})
}

// Save reescribe el snapshot en su archivo, si el store tiene uno.
func (s *Store) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".contacts-*.json")
	if err != nil {
		return errors.Wrapf(err, "save %s", s.path)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.contacts); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "encode %s", s.path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "save %s", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "save %s", s.path)
	}
	s.logger.Debug("snapshot saved", "path", s.path, "contacts", len(s.contacts))
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) mutate(ctx context.Context, contactID string, fn func(c *domain.Contact) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.lookup(contactID)
	if err != nil {
		return err
	}
	return fn(c)
}

// lookup requiere s.mu tomado.
func (s *Store) lookup(id string) (*domain.Contact, error) {
	for _, c := range s.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "contact %q", id)
}

// Matches indica si alguna keyword aparece literal en el nombre del
// contacto. Sin keywords coincide todo. Distingue mayúsculas, igual que la
// búsqueda de la libreta a la que reemplaza.
func Matches(c *domain.Contact, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(c.Name, kw) {
			return true
		}
	}
	return false
}

// Brief devuelve la proyección de listado de un contacto.
func Brief(c *domain.Contact) *domain.Contact {
	return &domain.Contact{ID: c.ID, Name: c.Name, IsCompany: c.IsCompany, HasImage: c.HasImage}
}
