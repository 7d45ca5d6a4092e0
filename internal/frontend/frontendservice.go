package frontend

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jo-hoe/rgbexplorer/internal/analyzer"
	"github.com/jo-hoe/rgbexplorer/internal/backend"
	"github.com/jo-hoe/rgbexplorer/internal/common"
	"github.com/jo-hoe/rgbexplorer/internal/core"
	"github.com/jo-hoe/rgbexplorer/internal/registry"
)

const (
	MainPageName      = "index.html"
	GeneratorPageName = "generator.html"
	cardsFragment     = "cards.html"
	detailFragment    = "detail.html"
	contractField     = "contract"
)

// browsers submit textarea content with CRLF line breaks
var formNewlines = strings.NewReplacer("\r\n", "\n")

type FrontendService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

type generatorPage struct {
	Status template.HTML
	// browser side limit for one analysis request
	TimeoutMillis int64
}

type assetRequest struct {
	Index int `param:"index" validate:"min=0"`
}

func NewFrontendService(config *core.ServiceConfig, coreService *core.CoreService) *FrontendService {
	return &FrontendService{
		coreService: coreService,
		config:      config,
	}
}

// rootRedirectHandler redirects root path to index.html
func (service *FrontendService) rootRedirectHandler(ctx echo.Context) error {
	return ctx.Redirect(http.StatusMovedPermanently, "/"+MainPageName)
}

func (service *FrontendService) SetRoutes(e *echo.Echo) {
	e.Renderer = newTemplate()

	e.GET("/", service.rootRedirectHandler) // Redirect root to index.html
	e.GET("/"+MainPageName, service.indexHandler)
	e.GET("/"+GeneratorPageName, service.generatorHandler)

	e.GET("/htmx/cards", service.htmxCardsHandler)
	e.GET("/htmx/asset/:index", service.htmxAssetHandler)
	e.POST("/htmx/analyze", service.htmxAnalyzeHandler)
	e.POST("/inscription", service.inscriptionHandler)

	// Favicon (SVG) route
	e.GET("/icon.svg", service.iconHandler)
}

func (service *FrontendService) indexHandler(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, MainPageName, nil)
}

func (service *FrontendService) generatorHandler(ctx echo.Context) error {
	status, err := service.coreService.Renderer().RenderStatus(analyzer.Snapshot{State: analyzer.Idle})
	if err != nil {
		slog.Error("generatorHandler: failed to render idle status", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to render page")
	}
	return ctx.Render(http.StatusOK, GeneratorPageName, generatorPage{
		Status:        status,
		TimeoutMillis: service.config.Analysis.Timeout.Milliseconds(),
	})
}

func (service *FrontendService) htmxCardsHandler(ctx echo.Context) error {
	// Prevent caching so a reloaded registry is always shown
	service.setNoCache(ctx)
	return ctx.Render(http.StatusOK, cardsFragment, map[string][]registry.Card{"Cards": service.coreService.Cards()})
}

func (service *FrontendService) htmxAssetHandler(ctx echo.Context) error {
	var req assetRequest
	if err := common.BindAndValidate(ctx, &req); err != nil {
		slog.Warn("htmxAssetHandler: invalid asset index",
			"status", http.StatusBadRequest, "index", ctx.Param("index"), "error", err)
		return ctx.String(http.StatusBadRequest, "Invalid asset index")
	}

	card, ok := service.coreService.Card(req.Index)
	if !ok {
		slog.Warn("htmxAssetHandler: asset not found", "status", http.StatusNotFound, "index", req.Index)
		return ctx.String(http.StatusNotFound, "Asset not found")
	}
	return ctx.Render(http.StatusOK, detailFragment, registry.NewDetail(card))
}

func (service *FrontendService) htmxAnalyzeHandler(ctx echo.Context) error {
	text := formNewlines.Replace(ctx.FormValue(contractField))
	if int64(len(text)) > service.config.Analysis.MaxBodyBytes {
		slog.Warn("htmxAnalyzeHandler: contract too large",
			"status", http.StatusRequestEntityTooLarge, "length", len(text))
		return ctx.String(http.StatusRequestEntityTooLarge, "Contract is too large")
	}

	snap := analyzer.Snapshot{State: analyzer.Idle}
	if strings.TrimSpace(text) != "" {
		snap = service.coreService.Evaluate(ctx.Request().Context(), strings.TrimSpace(text))
	}

	status, err := service.coreService.Renderer().RenderStatus(snap)
	if err != nil {
		slog.Error("htmxAnalyzeHandler: failed to render status", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to render analysis")
	}
	service.setNoCache(ctx)
	return ctx.HTML(http.StatusOK, string(status))
}

func (service *FrontendService) inscriptionHandler(ctx echo.Context) error {
	text := formNewlines.Replace(ctx.FormValue(contractField))
	if int64(len(text)) > service.config.Analysis.MaxBodyBytes {
		return ctx.String(http.StatusRequestEntityTooLarge, "Contract is too large")
	}
	artifact, err := service.coreService.Generate(ctx.Request().Context(), text)
	if err != nil {
		return backend.InscriptionError(ctx, "inscriptionHandler", err)
	}
	return backend.Attachment(ctx, artifact)
}

func (service *FrontendService) setNoCache(ctx echo.Context) {
	ctx.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	ctx.Response().Header().Set("Pragma", "no-cache")
	ctx.Response().Header().Set("Expires", "0")
}

func (service *FrontendService) iconHandler(ctx echo.Context) error {
	data, err := assetsFS.ReadFile("views/icon.svg")
	if err != nil {
		slog.Error("iconHandler: failed to read icon.svg", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load icon")
	}
	// Cache for 7 days
	ctx.Response().Header().Set("Cache-Control", "public, max-age=604800, immutable")
	return ctx.Blob(http.StatusOK, "image/svg+xml", data)
}
