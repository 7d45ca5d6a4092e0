package registry

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultDescription = "No description available for this asset."
	DefaultSupply      = "1"
	DefaultCreatedAt   = "Unknown"
	DefaultContractID  = "Not Recorded"
	DefaultSchemaID    = "Unknown Schema"
	DefaultChecksum    = "Not Available"
	DefaultVersion     = "Unknown"
	DefaultImageField  = "Unknown"
	DefaultVisualDesc  = "No visual description recorded."

	DetailExplanatoryNote = "Registry entries are produced by the RGB scanner from inscribed HTML files. " +
		"The preview image is a placeholder; the original smallblob preview stays inside the embedded contract " +
		"and full-resolution media is stored off-chain."
)

var supplyPrinter = message.NewPrinter(language.English)

// Detail is the fully defaulted report for one record as shown in the modal.
type Detail struct {
	Index    int
	Title    string
	ImageURL string

	AssetName     string
	ContractType  string
	Description   string
	InscriptionID string
	ContractID    string
	SchemaID      string
	Supply        string
	CreatedAt     string
	Checksum      string
	Version       string

	Image ImageDetails
	Note  string
}

// NewDetail projects a card into its modal report. Every empty field takes its
// documented default.
func NewDetail(card Card) Detail {
	r := card.Record
	title := fmt.Sprintf("RGB #%d", r.RGBNumber)

	var img ImageDetails
	if r.ImageDetails != nil {
		img = *r.ImageDetails
	}

	return Detail{
		Index:    card.Index,
		Title:    title,
		ImageURL: card.ImageURL,

		AssetName:     orDefault(r.AssetName, title),
		ContractType:  orDefault(r.ContractType, UnknownType),
		Description:   orDefault(r.Description, DefaultDescription),
		InscriptionID: r.InscriptionID,
		ContractID:    orDefault(r.ContractID, DefaultContractID),
		SchemaID:      orDefault(r.SchemaID, DefaultSchemaID),
		Supply:        FormatSupply(r.Supply),
		CreatedAt:     orDefault(r.CreatedAt, DefaultCreatedAt),
		Checksum:      orDefault(r.Checksum, DefaultChecksum),
		Version:       orDefault(r.Version, DefaultVersion),

		Image: ImageDetails{
			Format:      orDefault(img.Format, DefaultImageField),
			Dimensions:  orDefault(img.Dimensions, DefaultImageField),
			Size:        orDefault(img.Size, DefaultImageField),
			Location:    orDefault(img.Location, DefaultImageField),
			Compression: orDefault(img.Compression, DefaultImageField),
			VisualDesc:  orDefault(img.VisualDesc, DefaultVisualDesc),
		},
		Note: DetailExplanatoryNote,
	}
}

// FormatSupply renders a supply with English digit grouping. Zero means unset.
func FormatSupply(supply int64) string {
	if supply == 0 {
		return DefaultSupply
	}
	return supplyPrinter.Sprintf("%d", supply)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
