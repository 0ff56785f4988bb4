// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"io"

	"contacts/internal/core/domain"
	"contacts/internal/platform/errors"
)

// ContactsJSON escribe los contactos como un array JSON de snapshots, el
// mismo formato que lee el store json.
func ContactsJSON(w io.Writer, contacts []*domain.Contact) error {
	if contacts == nil {
		contacts = []*domain.Contact{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(contacts); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}
