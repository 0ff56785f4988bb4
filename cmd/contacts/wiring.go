// cmd/contacts/wiring.go
package main

import (
	"context"
	"io"

	"contacts/internal/adapters/dns"
	"contacts/internal/adapters/journal"
	"contacts/internal/adapters/mapquest"
	"contacts/internal/adapters/output"
	"contacts/internal/core/checks"
	"contacts/internal/core/ports"
	"contacts/internal/platform/config"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
	"contacts/internal/platform/registry"
)

// openStore construye el store elegido desde el registry y, si hay
// journal configurado, lo envuelve para registrar cada escritura.
func openStore(opts config.Options, logger logx.Logger) (ports.ContactStore, error) {
	store, err := registry.Global().Build(opts.Store, ports.StoreOptions{
		Path:  opts.StorePath(),
		Batch: opts.Batch,
		Brief: !opts.NeedsDetail(),
		Custom: map[string]interface{}{
			"osascript": opts.Osascript,
			"timeout":   opts.Timeout,
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	if opts.JournalPath == "" {
		return store, nil
	}

	repo, err := journal.Open(opts.JournalPath)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	logger.Debug("journal enabled", "path", opts.JournalPath)
	return journal.Wrap(store, repo, logger), nil
}

func closeStore(store ports.ContactStore, logger logx.Logger) {
	if err := store.Close(); err != nil {
		logger.Warn("failed to close store", "store", store.Name(), "error", err.Error())
	}
}

// buildEngine arma los checks por defecto. Con --network=false no hay
// resolver ni geocoder; sin API key no hay geocoder.
func buildEngine(opts config.Options, user config.UserConfig, logger logx.Logger) *checks.Engine {
	checkOpts := checks.Options{
		Formats: user.AddressFormats,
		Logger:  logger,
	}
	if !opts.Network {
		return checks.Default(checkOpts)
	}

	checkOpts.Resolver = dns.New(dns.Options{}, logger)

	key := opts.MapQuestAPIKey
	if key == "" {
		key = user.MapQuestAPIKey
	}
	if key != "" {
		geocoder, err := mapquest.New(mapquest.Options{APIKey: key, CacheSize: 512}, logger)
		if err != nil {
			logger.Warn("geocoder disabled", "error", err.Error())
		} else {
			checkOpts.Geocoder = geocoder
		}
	}
	return checks.Default(checkOpts)
}

// dumpJSON vuelca los contactos como un array JSON, uno a uno.
func dumpJSON(ctx context.Context, out io.Writer, store ports.ContactStore, keywords []string, logger logx.Logger) error {
	w := output.NewStreamingWriter(out, logger)
	var findErr error
	for c, err := range store.Find(ctx, keywords) {
		if err != nil {
			findErr = errors.Wrapf(err, "find contacts in %s", store.Name())
			break
		}
		if err := w.Write(c); err != nil {
			findErr = err
			break
		}
	}
	return errors.Join(findErr, w.Close())
}
