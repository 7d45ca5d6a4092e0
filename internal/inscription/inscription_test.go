package inscription

import (
	"errors"
	"strings"
	"testing"

	"github.com/jo-hoe/rgbexplorer/internal/metadata"
)

const sampleContract = `-----BEGIN RGB CONTRACT-----
Id: rgb:wW5abcdefghij
Schema: rgb:sch:example

0000ABCD&<>"'
-----END RGB CONTRACT-----`

func TestGenerate_RoundTrip(t *testing.T) {
	inputs := []string{
		sampleContract,
		"single line",
		"  leading and trailing whitespace \n\n",
		"crlf\r\nline endings\r\n",
		"entities &amp; &lt;b&gt; stay literal",
		"unicode ✓ ünïcödé",
		"<!-- comment like -->",
	}

	for _, text := range inputs {
		artifact, err := Generate(Input{Text: text, ID: "rgb:abc"})
		if err != nil {
			t.Fatalf("Generate(%q) error: %v", text, err)
		}
		got, err := Extract(artifact.Content)
		if err != nil {
			t.Fatalf("Extract error for %q: %v", text, err)
		}
		if got != text {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", got, text)
		}
	}
}

func TestGenerate_PayloadLayout(t *testing.T) {
	artifact, err := Generate(Input{Text: "PAYLOAD"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	want := `<script type="application/rgb+armored" id="genesis-data">` + "\nPAYLOAD\n  </script>"
	if !strings.Contains(string(artifact.Content), want) {
		t.Fatalf("payload layout not found in:\n%s", artifact.Content)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "empty", text: "", want: ErrEmptyInput},
		{name: "blank", text: " \n\t", want: ErrEmptyInput},
		{name: "closing script", text: "abc</script><script>alert(1)", want: ErrUnsafePayload},
		{name: "mixed case script", text: "abc <ScRiPt src=x>", want: ErrUnsafePayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(Input{Text: tt.text})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerate_Defaults(t *testing.T) {
	artifact, err := Generate(Input{Text: "contract"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if artifact.FileName != "rgb_RGB_rgb_gene.html" {
		t.Errorf("FileName = %q", artifact.FileName)
	}
	if artifact.Metadata != FallbackMetadata(GenesisID) {
		t.Errorf("Metadata = %+v, want fallback", artifact.Metadata)
	}
	content := string(artifact.Content)
	for _, s := range []string{"<title>RGB Asset</title>", "RGB / Unknown", "ID: rgb_genesis", ImageNote} {
		if !strings.Contains(content, s) {
			t.Errorf("expected %q in document", s)
		}
	}
	if strings.Contains(content, "<img") {
		t.Error("did not expect an image element")
	}
}

func TestGenerate_WithMetadataAndImage(t *testing.T) {
	meta := metadata.Guess(nil, "rgb:wW5abcdefghij", metadata.Headers{})
	artifact, err := Generate(Input{
		Text:     sampleContract,
		ID:       meta.ID,
		Image:    "data:image/jpeg;base64,/9j/4AAQ",
		Metadata: &meta,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if artifact.FileName != "rgb_GOAT_rgb:wW5a.html" {
		t.Errorf("FileName = %q", artifact.FileName)
	}
	content := string(artifact.Content)
	for _, s := range []string{`<img src="data:image/jpeg;base64,/9j/4AAQ"`, "Goddess GOAT #818", "ssi:anonymous"} {
		if !strings.Contains(content, s) {
			t.Errorf("expected %q in document", s)
		}
	}
}

func TestGenerate_EscapesMetadata(t *testing.T) {
	meta := FallbackMetadata("rgb:x")
	meta.Name = `<b onclick="x">`
	artifact, err := Generate(Input{Text: "contract", Metadata: &meta, Image: `javascript:alert(1)`})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	content := string(artifact.Content)
	if strings.Contains(content, `<b onclick`) {
		t.Error("metadata was not escaped")
	}
	if strings.Contains(content, "javascript:") {
		t.Error("non data image url was embedded")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		ticker, id, want string
	}{
		{"USDT", "rgb:abcdefghijkl", "rgb_USDT_rgb:abcd.html"},
		{"GOAT", "short", "rgb_GOAT_short.html"},
		{"ÜBER", "ünïcödé-long-id", "rgb_ÜBER_ünïcödé-.html"},
		{"A/B", "x", "rgb_A_B_x.html"},
	}
	for _, tt := range tests {
		if got := FileName(tt.ticker, tt.id); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.ticker, tt.id, got, tt.want)
		}
	}
}

func TestExtract_NotFound(t *testing.T) {
	if _, err := Extract([]byte("<html><body><script>var x</script></body></html>")); !errors.Is(err, ErrPayloadNotFound) {
		t.Fatalf("expected ErrPayloadNotFound, got %v", err)
	}
}
