// cmd/contacts/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"contacts/internal/adapters/output"
	"contacts/internal/core/usecases"
	"contacts/internal/platform/config"
	"contacts/internal/platform/logx"
	"contacts/internal/platform/ui"

	// Import stores for auto-registration via init()
	_ "contacts/internal/adapters/applescript"
	_ "contacts/internal/adapters/memstore"
	_ "contacts/internal/adapters/vcardstore"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Defaults + ENV (.env incluido); los flags se aplican en Execute
	opts, err := config.LoadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	// 2. Shared logger
	logger := logx.New()

	// 3. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	root := newRootCmd(&opts, logger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Err(err, "phase", "run")
		cancel()
		os.Exit(1)
	}
}

// newRootCmd arma `contacts [keywords...]` y sus subcomandos sobre opts.
func newRootCmd(opts *config.Options, logger logx.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "contacts [keywords...]",
		Short:         "Check and fix an address book",
		Long:          config.LongHelp,
		Example:       config.Examples,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Normalize()
			return runAudit(cmd.Context(), cmd.OutOrStdout(), *opts, args, logger)
		},
	}
	root.SetVersionTemplate(config.VersionString(version, commit, date))
	config.BindFlags(root.PersistentFlags(), opts)

	root.AddCommand(
		newConfigCmd(opts),
		newKeywordsCmd(opts),
		newJournalCmd(opts),
		newExportCmd(opts, logger),
		newStoresCmd(),
	)
	return root
}

// runAudit lista, revisa o arregla los contactos que coinciden con args.
func runAudit(ctx context.Context, out io.Writer, opts config.Options, args []string, logger logx.Logger) error {
	user, err := config.LoadFile(opts.ConfigPath)
	if err != nil {
		return err
	}
	keywords := usecases.NewKeywordPreparer(user.Romanize).Prepare(args)

	store, err := openStore(opts, logger)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	if opts.JSON {
		return dumpJSON(ctx, out, store, keywords, logger)
	}

	mode, err := ui.ParseMode(opts.UI)
	if err != nil {
		return err
	}
	tty := isTerminal(out)
	if mode == "" {
		mode = ui.UIModePlain
		if tty {
			mode = ui.UIModePretty
		}
	}
	var detail ui.DetailFunc
	if opts.Detail {
		detail = output.ContactDetail
	}
	presenter := ui.New(ui.Options{
		Writer:      out,
		Mode:        mode,
		Check:       opts.Check,
		Detail:      detail,
		Interactive: tty && mode == ui.UIModePretty,
	})

	engine := buildEngine(opts, user, logger)
	auditor := usecases.NewAuditor(usecases.AuditorOptions{
		Store:    store,
		Engine:   engine,
		Reporter: presenter,
		Logger:   logger,
		Check:    opts.Check,
		Fix:      opts.Fix,
	})

	presenter.Begin("Counting contacts")
	_, runErr := auditor.Run(ctx, keywords)
	if err := presenter.Close(); runErr == nil {
		runErr = err
	}
	return runErr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}

// rootContextWithSignals creates a root context cancelled on SIGINT/SIGTERM.
// The returned cancel function stops the signal handler as well.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	return base, func() {
		signal.Stop(ch)
		baseCancel()
	}
}
