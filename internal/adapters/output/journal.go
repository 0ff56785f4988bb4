// internal/adapters/output/journal.go
package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"contacts/internal/core/ports"
)

// JournalTable imprime las escrituras registradas, una por fila.
func JournalTable(w io.Writer, entries []ports.JournalEntry) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	if len(entries) == 0 {
		fmt.Fprintln(tw, "No writes recorded.")
		return flush(tw)
	}

	fmt.Fprintln(tw, "TIME\tSTORE\tOP\tCONTACT\tFIELD\tINFO\tVALUE\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.AppliedAt.Local().Format("2006-01-02 15:04:05"),
			e.Store,
			e.Op,
			e.ContactID,
			e.Field,
			dash(e.InfoID),
			dash(entryValue(e)),
			dash(oneLine(e.Err)),
		)
	}
	return flush(tw)
}

// entryValue: el valor escalar o los atributos como k="v" ordenados.
func entryValue(e ports.JournalEntry) string {
	if len(e.Attrs) == 0 {
		return oneLine(e.Value)
	}
	keys := slices.Sorted(maps.Keys(e.Attrs))
	kv := make([]string, len(keys))
	for i, k := range keys {
		kv[i] = fmt.Sprintf("%s=%q", k, e.Attrs[k])
	}
	return strings.Join(kv, " ")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
