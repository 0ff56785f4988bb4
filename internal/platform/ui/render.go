// internal/platform/ui/render.go
package ui

import (
	"fmt"

	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
)

// Indent precede a las líneas que cuelgan de un contacto.
const Indent = "    "

// contactIcon: severidad al revisar; persona/empresa (si tiene imagen) al listar.
func contactIcon(c *domain.Contact, problems []*domain.Problem, check bool) string {
	if check {
		return domain.ContactCategory(c, problems).Icon()
	}
	return c.ListIcon()
}

func contactLine(icon, name string) string {
	return icon + " " + name
}

func problemLine(p *domain.Problem) string {
	return Indent + p.String()
}

func fixHeader(d diff.Diff) string {
	return Indent + IconFix + " " + plural(d.Len(), "change")
}

// changeLines lista las escrituras: updates, adds y luego deletes.
func changeLines(d diff.Diff) []string {
	var out []string
	add := func(verb string, ms []diff.Mutation) {
		for _, m := range ms {
			out = append(out, Indent+Indent+verb+" "+m.String())
		}
	}
	add("update", d.Updates)
	add("add", d.Adds)
	add("delete", d.Deletes)
	return out
}

func summaryLine(s ports.AuditSummary) string {
	return fmt.Sprintf("%s, %s, %s, %d fixed",
		plural(s.Contacts, "contact"), plural(s.Warnings, "warning"), plural(s.Errors, "error"), s.Fixed)
}
