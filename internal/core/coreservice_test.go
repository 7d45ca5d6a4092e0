package core

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jo-hoe/rgbexplorer/internal/analyzer"
	"github.com/jo-hoe/rgbexplorer/internal/inscription"
	"github.com/jo-hoe/rgbexplorer/internal/metrics"
)

func newTestCoreService(t *testing.T, source string) *CoreService {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Registry.Source = source
	cfg.Cache.Type = "sqlite"
	cfg.Cache.ConnectionString = ":memory:"
	cfg.Analysis.Decoders = []string{"base64"}
	svc, err := NewCoreService(cfg, metrics.New())
	if err != nil {
		t.Fatalf("NewCoreService error: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func armored(id string, payload []byte) string {
	return "-----BEGIN RGB CONTRACT-----\nId: " + id + "\n\n" +
		base64.StdEncoding.EncodeToString(payload) +
		"\n-----END RGB CONTRACT-----"
}

func TestCoreService_LoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	content := `[{"rgb_number":1,"inscription_id":"a"},{"rgb_number":3,"inscription_id":"b"},{"rgb_number":2,"inscription_id":"c"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write registry: %v", err)
	}

	svc := newTestCoreService(t, path)
	if err := svc.LoadRegistry(context.Background()); err != nil {
		t.Fatalf("LoadRegistry error: %v", err)
	}
	cards := svc.Cards()
	if len(cards) != 3 || cards[0].Record.RGBNumber != 3 || cards[2].Record.RGBNumber != 1 {
		t.Fatalf("unexpected card order: %+v", cards)
	}
	card, ok := svc.Card(2)
	if !ok || card.Record.InscriptionID != "c" {
		t.Fatalf("Card(2) = %+v, %v", card, ok)
	}
	if _, ok := svc.Card(7); ok {
		t.Fatal("did not expect card 7")
	}
}

func TestCoreService_LoadRegistryFallback(t *testing.T) {
	svc := newTestCoreService(t, filepath.Join(t.TempDir(), "missing.json"))
	if err := svc.LoadRegistry(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if got := len(svc.Cards()); got != 2 {
		t.Fatalf("expected 2 fallback cards, got %d", got)
	}
	if got := testutil.ToFloat64(svc.Metrics().RegistryFallback); got != 1 {
		t.Fatalf("fallback counter = %v, want 1", got)
	}
}

func TestCoreService_AnalyzeUsesCache(t *testing.T) {
	svc := newTestCoreService(t, "unused.json")
	text := armored("rgb:abc", []byte("\x00\x01USDT\x00Tether Gold\x00"))

	first, err := svc.Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	second, err := svc.Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if first.ID != "rgb:abc" || second.ID != first.ID || strings.Join(second.Strings, ",") != "USDT,Tether Gold" {
		t.Fatalf("unexpected results: %+v / %+v", first, second)
	}
	if got := testutil.ToFloat64(svc.Metrics().CacheHits); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(svc.Metrics().CacheMisses); got != 1 {
		t.Errorf("cache misses = %v, want 1", got)
	}
}

func TestCoreService_Evaluate(t *testing.T) {
	svc := newTestCoreService(t, "unused.json")

	snap := svc.Evaluate(context.Background(), "no armor here")
	if snap.State != analyzer.Failed || snap.Message != "Error: no RGB armor block found" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	snap = svc.Evaluate(context.Background(), armored("rgb:abc", []byte("\x00USDT\x00")))
	if snap.State != analyzer.Resolved || snap.Metadata.Ticker != "USDT" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestCoreService_Generate(t *testing.T) {
	svc := newTestCoreService(t, "unused.json")
	text := armored("rgb:abcdefghijk", []byte("\x00USDT\x00"))

	artifact, err := svc.Generate(context.Background(), text)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if artifact.FileName != "rgb_USDT_rgb:abcd.html" {
		t.Errorf("FileName = %q", artifact.FileName)
	}
	got, err := inscription.Extract(artifact.Content)
	if err != nil || got != text {
		t.Fatalf("Extract = %q, %v", got, err)
	}

	// unanalyzable text still produces a genesis artifact
	artifact, err = svc.Generate(context.Background(), "just text")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if artifact.FileName != "rgb_RGB_rgb_gene.html" {
		t.Errorf("FileName = %q", artifact.FileName)
	}

	if _, err := svc.Generate(context.Background(), ""); !errors.Is(err, inscription.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if got := testutil.ToFloat64(svc.Metrics().Inscriptions); got != 2 {
		t.Errorf("inscriptions = %v, want 2", got)
	}
}

func TestCoreService_GenerateSurroundingWhitespace(t *testing.T) {
	svc := newTestCoreService(t, "unused.json")
	text := "\n\n" + armored("rgb:abcdefghijk", []byte("\x00USDT\x00")) + "\n"

	shown := svc.Evaluate(context.Background(), strings.TrimSpace(text))
	if shown.State != analyzer.Resolved {
		t.Fatalf("expected resolved analysis, got %+v", shown)
	}
	artifact, err := svc.Generate(context.Background(), text)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if artifact.Metadata.ID != shown.ID || artifact.Metadata.Ticker != shown.Metadata.Ticker {
		t.Errorf("artifact metadata %+v does not match shown %+v", artifact.Metadata, *shown.Metadata)
	}
	if artifact.FileName != "rgb_USDT_rgb:abcd.html" {
		t.Errorf("FileName = %q", artifact.FileName)
	}
	got, err := inscription.Extract(artifact.Content)
	if err != nil || got != text {
		t.Fatalf("Extract = %q, %v, want the raw text", got, err)
	}
}

func TestCoreService_Placeholder(t *testing.T) {
	svc := newTestCoreService(t, "unused.json")
	data, err := svc.Placeholder("40x40", "111", "444", "RGB")
	if err != nil {
		t.Fatalf("Placeholder error: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("expected PNG output")
	}
	if _, err := svc.Placeholder("bad", "111", "444", ""); err == nil {
		t.Fatal("expected error for bad size")
	}
}
