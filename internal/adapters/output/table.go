// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
)

// ContactsTable imprime una tabla con una fila por contacto.
func ContactsTable(w io.Writer, contacts []*domain.Contact) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	if len(contacts) == 0 {
		fmt.Fprintln(tw, "No contacts.")
		return flush(tw)
	}

	fmt.Fprintln(tw, "NAME\tORGANIZATION\tPHONES\tEMAILS\tADDRESSES")
	fmt.Fprintln(tw, "----\t------------\t------\t------\t---------")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%d\n",
			c.ListIcon(),
			c.Name,
			c.Organization,
			values(c.Phones),
			values(c.Emails),
			len(c.Addresses),
		)
	}
	return flush(tw)
}

// ContactDetail imprime los campos no vacíos de c, un valor por línea,
// precedido del ícono de la categoría del campo.
func ContactDetail(w io.Writer, c *domain.Contact) error {
	tw := tabwriter.NewWriter(w, 2, 4, 1, ' ', 0)
	for _, f := range domain.Fields() {
		switch f.Kind {
		case domain.FieldScalar:
			if v := f.Value(c); v != "" {
				fmt.Fprintf(tw, "    %s %s\t%s\n", f.Category.Icon(), f.Singular, oneLine(v))
			}
		case domain.FieldInfos:
			for _, info := range f.Infos(c) {
				icon := domain.FromLabel(info.Label, f.Category).Icon()
				fmt.Fprintf(tw, "    %s %s\t%s\n", icon, f.Singular, oneLine(info.Display()))
			}
		}
	}
	return flush(tw)
}

func values(infos []domain.Info) string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Value
	}
	return strings.Join(out, ", ")
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func flush(tw *tabwriter.Writer) error {
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush table")
	}
	return nil
}
