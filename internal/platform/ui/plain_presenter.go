// internal/platform/ui/plain_presenter.go
package ui

import (
	"fmt"
	"io"
	"sync"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
)

// PlainPresenter escribe texto sin estilos: una línea por contacto y sus
// problemas debajo. Es la salida para pipes y para `--ui plain`.
type PlainPresenter struct {
	mu     sync.Mutex
	w      io.Writer
	check  bool
	detail DetailFunc
	err    error
}

// NewPlainPresenter crea un presenter de texto plano sobre opts.Writer.
func NewPlainPresenter(opts Options) *PlainPresenter {
	return &PlainPresenter{w: opts.Writer, check: opts.Check, detail: opts.Detail}
}

func (p *PlainPresenter) Begin(string) {}

func (p *PlainPresenter) Started(int) {}

func (p *PlainPresenter) Contact(c *domain.Contact, problems []*domain.Problem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.println(contactLine(contactIcon(c, problems, p.check), c.Name))
	for _, pr := range problems {
		p.println(problemLine(pr))
	}
	if p.detail != nil && p.err == nil {
		p.err = p.detail(p.w, c)
	}
}

func (p *PlainPresenter) Fixed(_, _ *domain.Contact, changes diff.Diff, remaining []*domain.Problem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.println(fixHeader(changes))
	for _, line := range changeLines(changes) {
		p.println(line)
	}
	for _, pr := range remaining {
		p.println(Indent + problemLine(pr))
	}
}

func (p *PlainPresenter) Finished(s ports.AuditSummary) {
	if !p.check {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(summaryLine(s))
}

// Close devuelve el primer error de escritura.
func (p *PlainPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *PlainPresenter) println(line string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, line)
}
