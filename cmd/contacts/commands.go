// cmd/contacts/commands.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"contacts/internal/adapters/journal"
	"contacts/internal/adapters/output"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/core/usecases"
	"contacts/internal/platform/config"
	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
	"contacts/internal/platform/registry"
)

// newConfigCmd: `contacts config`. Los cambios se guardan de una vez.
func newConfigCmd(opts *config.Options) *cobra.Command {
	var (
		romanize string
		apiKey   string
		formats  []string
		show     bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the persisted configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Normalize()
			cfg, err := config.LoadFile(opts.ConfigPath)
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("romanize") {
				cfg.Romanize = romanize
				changed = true
			}
			if cmd.Flags().Changed("mapquest-api-key") {
				cfg.MapQuestAPIKey = apiKey
				changed = true
			}
			for _, spec := range formats {
				cc, format, err := config.ParseAddressFormat(spec)
				if err != nil {
					return err
				}
				if cfg.AddressFormats == nil {
					cfg.AddressFormats = map[string]domain.AddressFormat{}
				}
				cfg.AddressFormats[cc] = format
				changed = true
			}

			if changed {
				if err := config.SaveFile(opts.ConfigPath, cfg); err != nil {
					return err
				}
			}
			if show {
				s, err := cfg.ToJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&romanize, "romanize", "", "Letras con diacríticos a probar en las búsquedas (ej: öøÑ)")
	fs.StringVar(&apiKey, "mapquest-api-key", "", "API key de MapQuest; vacía desactiva el geocoder")
	fs.StringArrayVar(&formats, "address-format", nil, "Formato por país: cc=street:street,city:city,state:state,zip_code:zip_code")
	fs.BoolVar(&show, "show", false, "Imprimir la configuración como JSON")
	return cmd
}

// newKeywordsCmd: `contacts keywords`, muestra las búsquedas que se envían al store.
func newKeywordsCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords [keywords...]",
		Short: "Print the search strings sent to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Normalize()
			cfg, err := config.LoadFile(opts.ConfigPath)
			if err != nil {
				return err
			}
			for _, kw := range usecases.NewKeywordPreparer(cfg.Romanize).Prepare(args) {
				fmt.Fprintln(cmd.OutOrStdout(), kw)
			}
			return nil
		},
	}
}

// newJournalCmd: `contacts journal`, lista las escrituras registradas.
func newJournalCmd(opts *config.Options) *cobra.Command {
	filter := ports.DefaultJournalFilter()
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List the writes recorded with --journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Normalize()
			if opts.JournalPath == "" {
				return errors.Wrap(errors.ErrInvalidInput, "no journal configured: use --journal or CONTACTS_JOURNAL")
			}
			if _, err := os.Stat(opts.JournalPath); err != nil {
				return errors.Wrapf(errors.ErrNotFound, "journal %s", opts.JournalPath)
			}

			repo, err := journal.Open(opts.JournalPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}
			entries, err := repo.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return output.JournalTable(cmd.OutOrStdout(), entries)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&filter.ContactID, "contact", "", "Solo las escrituras de este contacto")
	fs.DurationVar(&since, "since", 0, "Solo las escrituras más recientes que esto (ej: 24h)")
	fs.IntVar(&filter.Limit, "limit", filter.Limit, "Máximo de filas (0 = sin límite)")
	return cmd
}

// newExportCmd: `contacts export`, escribe los contactos en otro formato.
func newExportCmd(opts *config.Options, logger logx.Logger) *cobra.Command {
	var (
		format string
		target string
	)

	cmd := &cobra.Command{
		Use:   "export [keywords...]",
		Short: "Export matching contacts as " + strings.Join(output.Formats(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Normalize()
			exporter, err := output.NewExporter(format)
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(opts.ConfigPath)
			if err != nil {
				return err
			}

			// la proyección breve no sirve para exportar
			full := *opts
			full.Detail = true
			store, err := openStore(full, logger)
			if err != nil {
				return err
			}
			defer closeStore(store, logger)

			var contacts []*domain.Contact
			keywords := usecases.NewKeywordPreparer(cfg.Romanize).Prepare(args)
			for c, err := range store.Find(cmd.Context(), keywords) {
				if err != nil {
					return errors.Wrapf(err, "find contacts in %s", store.Name())
				}
				contacts = append(contacts, c)
			}

			if target == "" || target == "-" {
				return exporter.Export(cmd.OutOrStdout(), contacts)
			}
			return exportFile(target, exporter, contacts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&format, "format", "json", "Formato: "+strings.Join(output.Formats(), ", "))
	fs.StringVarP(&target, "output", "o", "", "Archivo de salida (por defecto stdout)")
	return cmd
}

// exportFile escribe a un temporal y lo renombra, para no dejar archivos a medias.
func exportFile(path string, exporter ports.Exporter, contacts []*domain.Contact) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := exporter.Export(tmp, contacts); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "export %s", exporter.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return os.Rename(tmp.Name(), path)
}

// newStoresCmd: `contacts stores`, lista los backends registrados.
func newStoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List the available contact stores",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range registry.Global().List() {
				meta, _ := registry.Global().GetMetadata(name)
				file := ""
				if meta.NeedsPath {
					file = " (file)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s%s\n", name, meta.Description, file)
			}
		},
	}
}
