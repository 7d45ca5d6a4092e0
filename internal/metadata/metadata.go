package metadata

import (
	"regexp"
	"strings"
)

const (
	DefaultTicker      = "UNKNOWN"
	DefaultName        = "Unknown Asset"
	DefaultIssuer      = "Unknown Issuer"
	DefaultType        = "RGB21 Unique Digital Asset"
	DefaultDescription = "Standard Unique Digital Asset"
	DefaultSupply      = "1"

	DefaultSchema   = "Unknown Schema"
	DefaultChecksum = "Verified (Internal)"
	DefaultVersion  = "rgb21-stl"
)

var (
	tickerPattern = regexp.MustCompile(`^[A-Z]{3,5}$`)
	namePattern   = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
)

// UDAProfile is applied when the analysis produced no candidate strings at all.
var UDAProfile = Profile{
	Ticker:      "UDA",
	Name:        "RGB21 Asset",
	Issuer:      "RGB Protocol",
	Type:        "RGB21 (UDA)",
	Description: "Standard Unique Digital Asset on RGB.",
	Supply:      "1",
}

// Extracted is the display metadata derived from one analysis. Every field is
// always populated.
type Extracted struct {
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Type        string `json:"type"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Supply      string `json:"supply"`
	Schema      string `json:"schema"`
	Checksum    string `json:"checksum"`
	Version     string `json:"version"`
}

// Headers carries the contract header fields reported by the analysis backend.
// Empty values fall back to the defaults above.
type Headers struct {
	Schema   string
	Checksum string
	Version  string
}

// Profile is the set of heuristic fields that an override or fallback replaces wholesale.
type Profile struct {
	Ticker      string `yaml:"ticker"`
	Name        string `yaml:"name"`
	Issuer      string `yaml:"issuer"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Supply      string `yaml:"supply"`
}

func (p Profile) apply(meta *Extracted) {
	meta.Ticker = p.Ticker
	meta.Name = p.Name
	meta.Issuer = p.Issuer
	meta.Type = p.Type
	meta.Description = p.Description
	meta.Supply = p.Supply
}

// Guess derives display metadata from the printable strings of a decoded contract
// using the default override table.
func Guess(tokens []string, id string, headers Headers) Extracted {
	return DefaultOverrides.Guess(tokens, id, headers)
}

// Guess derives display metadata and then applies the first override whose
// prefix matches id.
func (t *OverrideTable) Guess(tokens []string, id string, headers Headers) Extracted {
	meta := Extracted{
		Ticker:      DefaultTicker,
		Name:        DefaultName,
		Issuer:      DefaultIssuer,
		Type:        DefaultType,
		ID:          id,
		Description: DefaultDescription,
		Supply:      DefaultSupply,
		Schema:      orDefault(headers.Schema, DefaultSchema),
		Checksum:    orDefault(headers.Checksum, DefaultChecksum),
		Version:     orDefault(headers.Version, DefaultVersion),
	}

	if len(tokens) > 0 {
		candidates := make([]string, 0, len(tokens))
		for _, s := range tokens {
			if len(s) > 2 {
				candidates = append(candidates, s)
			}
		}
		if ticker, ok := findTicker(candidates); ok {
			meta.Ticker = ticker
		}
		if name, ok := findName(candidates); ok {
			meta.Name = name
		}
		if issuer, ok := findIssuer(candidates); ok {
			meta.Issuer = issuer
		}
	} else {
		UDAProfile.apply(&meta)
	}

	if override, ok := t.Lookup(id); ok {
		override.apply(&meta)
	}
	return meta
}

func findTicker(candidates []string) (string, bool) {
	for _, s := range candidates {
		if s != "RGB" && tickerPattern.MatchString(s) {
			return s, true
		}
	}
	return "", false
}

func findName(candidates []string) (string, bool) {
	for _, s := range candidates {
		if len(s) > 5 && strings.Contains(s, "GOAT") {
			return s, true
		}
	}
	// longest plain alphanumeric token, earliest wins on ties
	best := ""
	for _, s := range candidates {
		if len(s) > len(best) && namePattern.MatchString(s) {
			best = s
		}
	}
	return best, best != ""
}

func findIssuer(candidates []string) (string, bool) {
	for _, s := range candidates {
		if strings.HasPrefix(s, "ssi:") {
			return s, true
		}
	}
	return "", false
}

// SanitizeID cuts an id at the first literal backslash-n sequence left over from
// escaped header blocks.
func SanitizeID(id string) string {
	if i := strings.Index(id, `\n`); i >= 0 {
		return id[:i]
	}
	return id
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
