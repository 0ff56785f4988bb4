// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar spinners, colores y símbolos en la terminal.
type PTermPresenter struct {
	mu sync.Mutex
	w  io.Writer

	check       bool
	detail      DetailFunc
	interactive bool

	// Spinner activo mientras se cuenta o se revisa
	spinner *pterm.SpinnerPrinter

	total     int
	seen      int
	startTime time.Time
	err       error
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter(opts Options) *PTermPresenter {
	return &PTermPresenter{
		w:           opts.Writer,
		check:       opts.Check,
		detail:      opts.Detail,
		interactive: opts.Interactive,
		startTime:   time.Now(),
	}
}

// Begin muestra un spinner mientras el store cuenta los contactos
func (p *PTermPresenter) Begin(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.startSpinner(IconSearch + " " + msg)
}

// Started cambia el spinner al progreso de la revisión
func (p *PTermPresenter) Started(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.stopSpinner()
	if p.check && total != 0 {
		p.startSpinner(p.progressText())
	}
}

// Contact pinta la línea del contacto y sus problemas
func (p *PTermPresenter) Contact(c *domain.Contact, problems []*domain.Problem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seen++
	p.pause(func() {
		name := c.Name
		if p.check {
			name = CategoryStyle(domain.ContactCategory(c, problems)).Sprint(c.Name)
		}
		p.println(contactLine(contactIcon(c, problems, p.check), name))

		for _, pr := range problems {
			p.println(CategoryStyle(pr.Category()).Sprint(problemLine(pr)))
		}
		if p.detail != nil && p.err == nil {
			p.err = p.detail(p.w, c)
		}
	})
}

// Fixed muestra las escrituras aplicadas y lo que queda por arreglar
func (p *PTermPresenter) Fixed(_, _ *domain.Contact, changes diff.Diff, remaining []*domain.Problem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pause(func() {
		p.println(StyleSuccess.Sprint(fixHeader(changes)))
		for _, line := range changeLines(changes) {
			p.println(StyleSecondary.Sprint(line))
		}
		for _, pr := range remaining {
			p.println(CategoryStyle(pr.Category()).Sprint(Indent + problemLine(pr)))
		}
	})
}

// Finished detiene el spinner y, al revisar, imprime el resumen
func (p *PTermPresenter) Finished(s ports.AuditSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	if !p.check || p.err != nil {
		return
	}

	printer := pterm.Success
	switch {
	case s.Errors > 0:
		printer = pterm.Error
	case s.Warnings > 0:
		printer = pterm.Warning
	}
	p.println("")
	printer.WithWriter(p.w).Println(fmt.Sprintf("%s %s in %s",
		IconSummary, summaryLine(s), formatDuration(time.Since(p.startTime))))
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	return p.err
}

// pause oculta el spinner mientras fn imprime y lo vuelve a mostrar después
func (p *PTermPresenter) pause(fn func()) {
	active := p.spinner != nil
	p.stopSpinner()
	fn()
	if active {
		p.startSpinner(p.progressText())
	}
}

func (p *PTermPresenter) progressText() string {
	if p.total < 0 {
		return fmt.Sprintf("Reviewing contacts (%d)", p.seen)
	}
	return fmt.Sprintf("Reviewing contacts %d/%d", p.seen, p.total)
}

func (p *PTermPresenter) startSpinner(text string) {
	if !p.interactive {
		return
	}
	spinner, err := pterm.DefaultSpinner.
		WithWriter(p.w).
		WithRemoveWhenDone(true).
		Start(text)
	if err != nil {
		return
	}
	p.spinner = spinner
}

func (p *PTermPresenter) stopSpinner() {
	if p.spinner == nil {
		return
	}
	_ = p.spinner.Stop()
	p.spinner = nil
}

func (p *PTermPresenter) println(line string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, line)
}
