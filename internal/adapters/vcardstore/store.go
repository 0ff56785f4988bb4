// internal/adapters/vcardstore/store.go

// Package vcardstore implementa ContactStore sobre un archivo .vcf. Los
// contactos viven en memoria y Save los reescribe como vCard 4.0.
package vcardstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/emersion/go-vcard"

	"contacts/internal/adapters/memstore"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
	"contacts/internal/platform/registry"
)

// Auto-registro del store al importar el package
func init() {
	if err := registry.Global().Register(
		"vcard",
		func(opts ports.StoreOptions, logger logx.Logger) (ports.ContactStore, error) {
			return Open(opts.Path, memstore.WithBrief(opts.Brief), memstore.WithLogger(logger))
		},
		registry.StoreMetadata{
			Description: "vCard file (.vcf), saved as vCard 4.0",
			NeedsPath:   true,
		},
	); err != nil {
		panic(err)
	}
}

// Store reutiliza memstore para lecturas y escrituras; sólo la carga y el
// guardado conocen el formato vCard.
type Store struct {
	*memstore.Store

	path  string
	mu    sync.Mutex
	cards map[string]vcard.Card
}

var _ ports.PersistentStore = (*Store)(nil)

// Open lee path. Si no existe, el store arranca vacío.
func Open(path string, opts ...memstore.Option) (*Store, error) {
	s := &Store{path: path, cards: map[string]vcard.Card{}}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		contacts, cards, err := Decode(f)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
		for i, c := range contacts {
			s.cards[c.ID] = cards[i]
		}
		s.Store = memstore.New(contacts, append([]memstore.Option{memstore.WithName("vcard")}, opts...)...)
	case os.IsNotExist(err):
		s.Store = memstore.New(nil, append([]memstore.Option{memstore.WithName("vcard")}, opts...)...)
	default:
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return s, nil
}

// Save reescribe el archivo. Las propiedades que el store no modela se
// conservan de la tarjeta cargada.
func (s *Store) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".contacts-*.vcf")
	if err != nil {
		return errors.Wrapf(err, "save %s", s.path)
	}
	defer os.Remove(tmp.Name())

	contacts := s.Contacts()
	enc := vcard.NewEncoder(tmp)
	for _, c := range contacts {
		card := encodeCard(c, s.cards[c.ID])
		if err := enc.Encode(card); err != nil {
			tmp.Close()
			return errors.Wrapf(err, "encode contact %q", c.ID)
		}
		s.cards[c.ID] = card
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "save %s", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "save %s", s.path)
	}
	return nil
}
