package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jo-hoe/rgbexplorer/internal/analyzer"
	"github.com/jo-hoe/rgbexplorer/internal/backend/decoding"
	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
	"github.com/jo-hoe/rgbexplorer/internal/backend/store"
	"github.com/jo-hoe/rgbexplorer/internal/inscription"
	"github.com/jo-hoe/rgbexplorer/internal/metadata"
	"github.com/jo-hoe/rgbexplorer/internal/metrics"
	"github.com/jo-hoe/rgbexplorer/internal/placeholder"
	"github.com/jo-hoe/rgbexplorer/internal/registry"
	"github.com/jo-hoe/rgbexplorer/internal/report"
)

type CoreService struct {
	config       *ServiceConfig
	store        store.AnalysisStore
	scanner      *scanner.Scanner
	overrides    *metadata.OverrideTable
	renderer     *report.Renderer
	loader       *registry.Loader
	placeholders registry.Placeholders
	metrics      *metrics.Metrics

	mu    sync.RWMutex
	cards []registry.Card
}

func NewCoreService(config *ServiceConfig, m *metrics.Metrics) (*CoreService, error) {
	if m == nil {
		m = metrics.New()
	}
	chain, err := decoding.NewChain(decoding.DefaultRegistry, config.Analysis.Decoders)
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder chain: %w", err)
	}
	overrides, err := config.OverrideTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build override table: %w", err)
	}
	analysisStore, err := store.NewStore(config.Cache.Type, config.Cache.ConnectionString, config.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis cache: %w", err)
	}

	placeholders := registry.Placeholders{BaseURL: config.Placeholders.BaseURL}
	return &CoreService{
		config:       config,
		store:        analysisStore,
		scanner:      scanner.NewScanner(chain),
		overrides:    overrides,
		renderer:     report.NewRenderer(overrides),
		loader:       registry.NewLoader(config.Registry.Source, config.Registry.Timeout),
		placeholders: placeholders,
		metrics:      m,
		cards:        registry.BuildCards(registry.FallbackRecords(), placeholders),
	}, nil
}

// LoadRegistry reads the configured registry once. On failure the fallback
// records stay in place and the error is returned for logging.
func (service *CoreService) LoadRegistry(ctx context.Context) error {
	records, err := service.loader.LoadOrFallback(ctx)
	if err != nil {
		service.metrics.RegistryFallback.Inc()
	}
	cards := registry.BuildCards(records, service.placeholders)

	service.mu.Lock()
	service.cards = cards
	service.mu.Unlock()
	return err
}

// Cards returns the sorted cards of the loaded registry.
func (service *CoreService) Cards() []registry.Card {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return append([]registry.Card{}, service.cards...)
}

// Records returns the loaded records in display order.
func (service *CoreService) Records() []registry.AssetRecord {
	cards := service.Cards()
	records := make([]registry.AssetRecord, 0, len(cards))
	for _, card := range cards {
		records = append(records, card.Record)
	}
	return records
}

// Card looks up a card by its load position.
func (service *CoreService) Card(index int) (registry.Card, bool) {
	for _, card := range service.Cards() {
		if card.Index == index {
			return card, true
		}
	}
	return registry.Card{}, false
}

// Analyze runs the scanner on text, serving repeated contracts from the cache.
func (service *CoreService) Analyze(ctx context.Context, text string) (*scanner.Result, error) {
	key := store.Key(text)
	cached, err := service.store.Get(ctx, key)
	switch {
	case err == nil:
		service.metrics.CacheHits.Inc()
		service.observe(cached)
		return cached, nil
	case !errors.Is(err, store.ErrNotFound):
		slog.Warn("analysis cache lookup failed", "key", key, "error", err)
	}
	service.metrics.CacheMisses.Inc()

	result := service.scanner.Analyze(text)
	if err := service.store.Put(ctx, key, &result); err != nil {
		slog.Warn("failed to cache analysis result", "key", key, "error", err)
	}
	service.observe(&result)
	return &result, nil
}

func (service *CoreService) observe(result *scanner.Result) {
	switch {
	case !result.Valid:
		service.metrics.ObserveAnalysis(metrics.OutcomeRejected)
	case result.Error != "":
		service.metrics.ObserveAnalysis(metrics.OutcomeError)
	default:
		service.metrics.ObserveAnalysis(metrics.OutcomeValid)
	}
}

// Evaluate analyzes text and maps the outcome to an analyzer snapshot.
func (service *CoreService) Evaluate(ctx context.Context, text string) analyzer.Snapshot {
	result, err := service.Analyze(ctx, text)
	return analyzer.Evaluate(text, result, err, service.overrides)
}

// Generate analyses text and builds its inscription from the extracted
// metadata, or from the fallback values when the analysis is not valid.
func (service *CoreService) Generate(ctx context.Context, text string) (*inscription.Artifact, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, inscription.ErrEmptyInput
	}
	// analysed like the live report, embedded verbatim
	in := inscription.Input{Text: text}
	if snap := service.Evaluate(ctx, trimmed); snap.State == analyzer.Resolved {
		in.ID = snap.ID
		in.Image = snap.Image
		in.Metadata = snap.Metadata
	}
	artifact, err := inscription.Generate(in)
	if err != nil {
		return nil, err
	}
	service.metrics.Inscriptions.Inc()
	return artifact, nil
}

func (service *CoreService) Renderer() *report.Renderer {
	return service.renderer
}

func (service *CoreService) Overrides() *metadata.OverrideTable {
	return service.overrides
}

func (service *CoreService) Metrics() *metrics.Metrics {
	return service.metrics
}

func (service *CoreService) Config() *ServiceConfig {
	return service.config
}

// Placeholder renders a local placeholder PNG.
func (service *CoreService) Placeholder(size, bg, fg, text string) ([]byte, error) {
	spec, err := placeholder.ParseSpec(size, bg, fg, text)
	if err != nil {
		return nil, err
	}
	return placeholder.Render(spec)
}

func (service *CoreService) Close() error {
	if service.store == nil {
		return nil
	}
	return service.store.Close()
}
