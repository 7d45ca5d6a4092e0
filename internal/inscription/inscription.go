package inscription

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jo-hoe/rgbexplorer/internal/metadata"
)

const (
	PayloadType = "application/rgb+armored"
	PayloadID   = "genesis-data"
	ImageNote   = "[Image Data Encoded in Contract - Render via RGB Node]"
	GenesisID   = "rgb_genesis"
	ContentType = "text/html; charset=utf-8"

	// MsgEmptyInput is the prompt shown for ErrEmptyInput
	MsgEmptyInput = "Please paste the contract first."

	payloadPrefix = "\n"
	payloadSuffix = "\n  "
)

var (
	ErrEmptyInput    = errors.New("empty contract input")
	ErrUnsafePayload = errors.New("contract text contains a script tag and cannot be embedded")
)

// Input is the committed analyzer state plus the raw contract text.
// ID, Image and Metadata may be empty when no analysis resolved.
type Input struct {
	Text     string
	ID       string
	Image    string
	Metadata *metadata.Extracted
}

type Artifact struct {
	FileName string
	Content  []byte
	Metadata metadata.Extracted
}

// FallbackMetadata is embedded when the contract was never analyzed.
func FallbackMetadata(id string) metadata.Extracted {
	return metadata.Extracted{
		Name:   "RGB Asset",
		Ticker: "RGB",
		Type:   "Unknown",
		Issuer: "Unknown",
		ID:     id,
	}
}

// Generate builds the self-contained inscription document.
func Generate(in Input) (*Artifact, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyInput
	}
	if !IsSafePayload(in.Text) {
		return nil, ErrUnsafePayload
	}

	id := in.ID
	if id == "" {
		id = GenesisID
	}
	meta := FallbackMetadata(id)
	if in.Metadata != nil {
		meta = *in.Metadata
	}

	image := ""
	if strings.HasPrefix(in.Image, "data:image/") {
		image = in.Image
	}

	var buf bytes.Buffer
	err := document.Execute(&buf, map[string]any{
		"Meta":        meta,
		"Image":       image,
		"ImageNote":   ImageNote,
		"PayloadType": PayloadType,
		"PayloadID":   PayloadID,
		"Payload":     in.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render inscription: %w", err)
	}

	return &Artifact{
		FileName: FileName(meta.Ticker, id),
		Content:  buf.Bytes(),
		Metadata: meta,
	}, nil
}

// FileName returns rgb_{ticker}_{first 8 characters of id}.html.
func FileName(ticker, id string) string {
	runes := []rune(id)
	if len(runes) > 8 {
		runes = runes[:8]
	}
	name := fmt.Sprintf("rgb_%s_%s.html", ticker, string(runes))
	return strings.NewReplacer("/", "_", `\`, "_").Replace(name)
}

// IsSafePayload reports whether text can sit inside the inert script element
// without terminating or nesting it.
func IsSafePayload(text string) bool {
	lower := strings.ToLower(text)
	return !strings.Contains(lower, "<script") && !strings.Contains(lower, "</script")
}
