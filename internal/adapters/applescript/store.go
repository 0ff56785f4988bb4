// internal/adapters/applescript/store.go

// Package applescript implementa ContactStore sobre la app Contactos de
// macOS, manejada con osascript.
package applescript

import (
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"strconv"
	"strings"
	"time"

	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
	"contacts/internal/platform/registry"
)

// Auto-registro del store al importar el package
func init() {
	if err := registry.Global().Register(
		"applescript",
		func(opts ports.StoreOptions, logger logx.Logger) (ports.ContactStore, error) {
			runner := NewOsascript(
				registry.GetStringConfig(opts.Custom, "osascript", ""),
				registry.GetDurationConfig(opts.Custom, "timeout", 0),
				logger,
			)
			return New(runner, opts.Batch, opts.Brief, logger), nil
		},
		registry.StoreMetadata{
			Description: "macOS Contacts app via osascript",
		},
	); err != nil {
		panic(err)
	}
}

// Store es la libreta vista a través de los scripts. Find trae primero los
// ids y después los detalles en lotes, un script por lote.
type Store struct {
	runner Runner
	batch  int
	brief  bool
	logger logx.Logger
}

// New crea el store. batch < 1 se trata como 1.
func New(runner Runner, batch int, brief bool, logger logx.Logger) *Store {
	if batch < 1 {
		batch = 1
	}
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Store{runner: runner, batch: batch, brief: brief, logger: logger.With("component", "store", "store", "applescript")}
}

func (s *Store) Name() string { return "applescript" }

func (s *Store) Count(ctx context.Context, keywords []string) (int, error) {
	out, err := s.runner.Run(ctx, "find", append([]string{"?"}, keywords...)...)
	if err != nil {
		return 0, errors.Wrap(err, "count contacts")
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidResponse, "count contacts: %q", strings.TrimSpace(string(out)))
	}
	return n, nil
}

func (s *Store) Find(ctx context.Context, keywords []string) iter.Seq2[*domain.Contact, error] {
	return func(yield func(*domain.Contact, error) bool) {
		out, err := s.runner.Run(ctx, "find", keywords...)
		if err != nil {
			yield(nil, errors.Wrap(err, "find contacts"))
			return
		}
		ids := strings.Fields(string(out))
		s.logger.Debug("contacts found", "ids", len(ids), "batch", s.batch)

		script := "detail"
		if s.brief {
			script = "brief"
		}
		for start := 0; start < len(ids); start += s.batch {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			chunk := ids[start:min(start+s.batch, len(ids))]
			contacts, err := s.fetch(ctx, script, chunk)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, c := range contacts {
				if !yield(c, nil) {
					return
				}
			}
		}
	}
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Contact, error) {
	contacts, err := s.fetch(ctx, "detail", []string{id})
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "contact %q", id)
	}
	return contacts[0], nil
}

func (s *Store) fetch(ctx context.Context, script string, ids []string) ([]*domain.Contact, error) {
	start := time.Now()
	out, err := s.runner.Run(ctx, script, ids...)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %d contacts", len(ids))
	}
	var contacts []*domain.Contact
	if err := json.NewDecoder(bytes.NewReader(out)).Decode(&contacts); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "%s output: %v", script, err)
	}
	s.logger.Debug("contacts fetched", "script", script, "count", len(contacts), "duration", time.Since(start).String())
	return contacts, nil
}

func (s *Store) UpdateField(ctx context.Context, contactID, field, value string) error {
	if _, err := domain.RequireField(field, domain.FieldScalar); err != nil {
		return err
	}
	return s.write(ctx, "update", contactID, field, value)
}

func (s *Store) DeleteField(ctx context.Context, contactID, field string) error {
	if _, err := domain.RequireField(field, domain.FieldScalar); err != nil {
		return err
	}
	return s.write(ctx, "delete", contactID, field)
}

func (s *Store) UpdateInfo(ctx context.Context, contactID, field, infoID string, attrs map[string]string) error {
	if _, err := domain.RequireField(field, domain.FieldInfos); err != nil {
		return err
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return errors.Wrap(err, "encode attrs")
	}
	return s.write(ctx, "update", contactID, field, infoID, string(raw))
}

func (s *Store) AddInfo(ctx context.Context, contactID, field string, attrs map[string]string) error {
	if _, err := domain.RequireField(field, domain.FieldInfos); err != nil {
		return err
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return errors.Wrap(err, "encode attrs")
	}
	return s.write(ctx, "add", contactID, field, string(raw))
}

func (s *Store) DeleteInfo(ctx context.Context, contactID, field, infoID string) error {
	if _, err := domain.RequireField(field, domain.FieldInfos); err != nil {
		return err
	}
	return s.write(ctx, "delete", contactID, field, infoID)
}

func (s *Store) write(ctx context.Context, script string, args ...string) error {
	if _, err := s.runner.Run(ctx, script, args...); err != nil {
		return errors.Wrapf(err, "%s %s", script, strings.Join(args[:2], " "))
	}
	s.logger.Debug("contact written", "script", script, "contact", args[0], "field", args[1])
	return nil
}

func (s *Store) Close() error { return nil }
