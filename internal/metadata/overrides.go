package metadata

import (
	"fmt"
	"strings"
)

// KnownContractPrefix identifies the Goddess GOAT #818 contract.
const KnownContractPrefix = "rgb:wW5"

// Override replaces the guessed fields for every contract id starting with Prefix.
// Checksum and Schema only replace placeholder values, never real header data.
type Override struct {
	Prefix   string  `yaml:"prefix"`
	Profile  Profile `yaml:",inline"`
	Checksum string  `yaml:"checksum"`
	Schema   string  `yaml:"schema"`
}

var knownContract = Override{
	Prefix: KnownContractPrefix,
	Profile: Profile{
		Ticker:      "GOAT",
		Name:        "Goddess GOAT #818",
		Issuer:      "ssi:anonymous",
		Type:        "RGB21 (UDA)",
		Description: "A unique digital collectible from the Goddess GOAT collection.",
		Supply:      "1",
	},
	Checksum: "c8a93474be3d21f7761c1691d82168af3858e1c5b49a6d2bce71d2989e42eb8d",
	Schema:   "rgb:sch:~6rjymf3GTE840lb5JoXm2aFwE8eWCk3mCjOf_mUztE#spider-montana-fantasy",
}

func (o Override) apply(meta *Extracted) {
	o.Profile.apply(meta)
	if o.Checksum != "" && (meta.Checksum == DefaultChecksum || meta.Checksum == "Unknown") {
		meta.Checksum = o.Checksum
	}
	if o.Schema != "" && meta.Schema == DefaultSchema {
		meta.Schema = o.Schema
	}
}

// OverrideTable maps contract id prefixes to hardcoded display records.
// Entries are matched in registration order.
type OverrideTable struct {
	entries []Override
}

// NewOverrideTable creates a table holding the built-in known contract entry.
func NewOverrideTable() *OverrideTable {
	return &OverrideTable{entries: []Override{knownContract}}
}

// Register appends an override to the table
func (t *OverrideTable) Register(o Override) error {
	if o.Prefix == "" {
		return fmt.Errorf("override prefix cannot be empty")
	}
	for _, existing := range t.entries {
		if existing.Prefix == o.Prefix {
			return fmt.Errorf("override for prefix %s is already registered", o.Prefix)
		}
	}
	t.entries = append(t.entries, o)
	return nil
}

// Lookup returns the first override whose prefix matches id.
func (t *OverrideTable) Lookup(id string) (Override, bool) {
	for _, o := range t.entries {
		if strings.HasPrefix(id, o.Prefix) {
			return o, true
		}
	}
	return Override{}, false
}

// IsKnown reports whether id matches any override.
func (t *OverrideTable) IsKnown(id string) bool {
	_, ok := t.Lookup(id)
	return ok
}

// DefaultOverrides is the table used by the package level Guess.
var DefaultOverrides = NewOverrideTable()
