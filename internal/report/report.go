package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jo-hoe/rgbexplorer/internal/analyzer"
	"github.com/jo-hoe/rgbexplorer/internal/metadata"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// SmallblobImage describes the preview image embedded in the known contract.
type SmallblobImage struct {
	Format      string
	Dimensions  string
	Size        string
	Location    string
	Compression string
	VisualDesc  string
}

// MediaSummary is the short description shown when a known contract carries
// no extractable image.
type MediaSummary struct {
	Format     string
	Dimensions string
	Encoding   string
	Storage    string
}

var knownImage = SmallblobImage{
	Format:      "JPEG (baseline, 8-bit, 3 components)",
	Dimensions:  "400×400 pixels",
	Size:        "914 bytes",
	Location:    "Offset 174 in decoded binary",
	Compression: "Extremely high (typical for on-chain smallblob)",
	VisualDesc:  "Minimalist placeholder. The highly compressed data renders as a near-white abstract field, serving as an on-chain cryptographic artifact.",
}

var knownMedia = MediaSummary{
	Format:     "JPEG (Smallblob)",
	Dimensions: "400x400 px",
	Encoding:   "RFC1924 Base85",
	Storage:    "On-Chain Binary",
}

// Renderer turns extracted metadata into HTML fragments.
type Renderer struct {
	overrides *metadata.OverrideTable
}

func NewRenderer(overrides *metadata.OverrideTable) *Renderer {
	if overrides == nil {
		overrides = metadata.DefaultOverrides
	}
	return &Renderer{overrides: overrides}
}

var defaultRenderer = NewRenderer(nil)

// Render uses the default override table.
func Render(meta metadata.Extracted) (template.HTML, error) {
	return defaultRenderer.Render(meta)
}

// Render picks the technical report for ids in the override table and the
// generic summary otherwise.
func (r *Renderer) Render(meta metadata.Extracted) (template.HTML, error) {
	name := "generic"
	data := map[string]any{"Meta": meta}
	if meta.ID != "" && r.overrides.IsKnown(meta.ID) {
		name = "technical"
		data["Owner"] = "anonymous"
		data["Encoding"] = "Base85 (RFC1924)"
		data["Image"] = knownImage
	}
	return execute(name, data)
}

func RenderStatus(snap analyzer.Snapshot) (template.HTML, error) {
	return defaultRenderer.RenderStatus(snap)
}

// RenderStatus renders the analyzer status block for one snapshot, including
// the metadata report once the analysis resolved.
func (r *Renderer) RenderStatus(snap analyzer.Snapshot) (template.HTML, error) {
	data := map[string]any{
		"State":   snap.State.String(),
		"Message": snap.Message,
	}
	if snap.State == analyzer.Resolved {
		if strings.HasPrefix(snap.Image, "data:image/") {
			// data URLs are not in html/template's safe URL set
			data["Image"] = template.URL(snap.Image)
		} else if snap.Known(r.overrides) {
			data["Media"] = knownMedia
		}
		if snap.Metadata != nil {
			body, err := r.Render(*snap.Metadata)
			if err != nil {
				return "", err
			}
			data["Report"] = body
		}
	}
	return execute("status", data)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
