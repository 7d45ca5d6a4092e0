package registry

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

const (
	DefaultPlaceholderBase = "https://placehold.co"
	LocalPlaceholderBase   = "/placeholder"

	UnknownType = "Unknown Type"

	rustInscriptionMarker = "inscription_rust.html"
	udaMarker             = "UDA"

	truncateLimit = 20
	truncateKeep  = 8
)

// Placeholders builds preview image URLs following the placehold.co path scheme
// {base}/{size}/{background}/{foreground}?text=...
type Placeholders struct {
	BaseURL string
}

// For selects the placeholder variant for a record.
func (p Placeholders) For(record AssetRecord) string {
	base := strings.TrimSuffix(p.BaseURL, "/")
	if base == "" {
		base = DefaultPlaceholderBase
	}
	switch {
	case strings.Contains(record.InscriptionID, rustInscriptionMarker):
		return fmt.Sprintf("%s/400x400/050505/ff0055?text=RGB+%%23%d", base, record.RGBNumber)
	case strings.Contains(record.ContractType, udaMarker):
		return base + "/400x400/050505/00ffcc?text=UDA"
	default:
		return base + "/400x400/111/444?text=RGB"
	}
}

// Card is the summary projection of one record. ImageURL is derived once and
// reused by the detail view.
type Card struct {
	Index        int
	Record       AssetRecord
	Label        string
	ImageURL     string
	ContractType string
	DisplayID    string
}

// BuildCards projects records to cards ordered by rgb_number descending.
// Records sharing a number keep their input order. Index is the input position.
func BuildCards(records []AssetRecord, placeholders Placeholders) []Card {
	cards := make([]Card, len(records))
	for i, record := range records {
		contractType := record.ContractType
		if contractType == "" {
			contractType = UnknownType
		}
		cards[i] = Card{
			Index:        i,
			Record:       record,
			Label:        fmt.Sprintf("RGB #%d", record.RGBNumber),
			ImageURL:     placeholders.For(record),
			ContractType: contractType,
			DisplayID:    Truncate(record.InscriptionID),
		}
	}
	slices.SortStableFunc(cards, func(a, b Card) int {
		return cmp.Compare(b.Record.RGBNumber, a.Record.RGBNumber)
	})
	return cards
}

// Truncate shortens identifiers longer than 20 characters to the first 8 and
// last 8 characters joined by "...".
func Truncate(id string) string {
	runes := []rune(id)
	if len(runes) <= truncateLimit {
		return id
	}
	return string(runes[:truncateKeep]) + "..." + string(runes[len(runes)-truncateKeep:])
}
