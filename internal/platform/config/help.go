// internal/platform/config/help.go
package config

import (
	"fmt"
	"runtime"
)

// LongHelp es la descripción larga del comando raíz.
const LongHelp = `contacts checks an address book for data-quality problems and fixes
what it can.

With no keywords every contact is listed. Keywords match contact names,
title-cased and expanded with the romanization alphabet from the config.

STORES:
  applescript   macOS Contacts through osascript (default)
  json          JSON snapshot file (--snapshot)
  vcard         vCard file (--vcard)
  memory        empty in-memory store

ENVIRONMENT VARIABLES:
  CONTACTS_STORE, CONTACTS_BATCH, CONTACTS_NETWORK, CONTACTS_SNAPSHOT,
  CONTACTS_VCARD, CONTACTS_TIMEOUT, CONTACTS_CONFIG, CONTACTS_JOURNAL,
  CONTACTS_MAPQUEST_API_KEY, CONTACTS_UI, CONTACTS_LOG_LEVEL

  A .env file in the working directory is read as well.
  CLI flags override environment variables.`

// Examples del comando raíz.
const Examples = `  contacts                       list every contact
  contacts bob balloon           list contacts named Bob or Balloon
  contacts --check               list problems
  contacts --fix bob             fix Bob's problems
  contacts --store json --snapshot backup.json --json
  contacts config --romanize öøÑ --address-format us=street:street,city:city,state:state,zip_code:zip_code`

// VersionString formatea la información de versión.
func VersionString(version, commit, date string) string {
	return fmt.Sprintf("contacts %s\n  Commit:  %s\n  Built:   %s\n  Go:      %s\n",
		version, commit, date, runtime.Version())
}
