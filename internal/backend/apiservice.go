package backend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jo-hoe/rgbexplorer/internal/common"
	"github.com/jo-hoe/rgbexplorer/internal/core"
	"github.com/jo-hoe/rgbexplorer/internal/inscription"
)

const (
	ProbePath       = "/probe"
	MetricsPath     = "/metrics"
	mimePNG         = "image/png"
	placeholderPath = "/placeholder/:size/:bg/:fg"
)

type APIService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

type placeholderRequest struct {
	Size       string `param:"size" validate:"required"`
	Background string `param:"bg" validate:"required,hexadecimal"`
	Foreground string `param:"fg" validate:"required,hexadecimal"`
	Text       string `query:"text" validate:"max=64"`
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
		config:      config,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	// Set probe route
	e.GET(ProbePath, func(c echo.Context) error {
		return c.String(http.StatusOK, "API Service is running")
	})
	e.GET(MetricsPath, echo.WrapHandler(s.coreService.Metrics().Handler()))

	e.GET("/api/registry", s.registryHandler)
	e.POST("/api/analyze", s.analyzeHandler)
	e.POST("/api/inscription", s.inscriptionHandler)
	e.GET(placeholderPath, s.placeholderHandler)
}

func (s *APIService) registryHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.coreService.Records())
}

func (s *APIService) analyzeHandler(ctx echo.Context) error {
	text, status, err := s.readText(ctx)
	if err != nil {
		return ctx.String(status, err.Error())
	}
	result, err := s.coreService.Analyze(ctx.Request().Context(), text)
	if err != nil {
		slog.Error("analyzeHandler: failed to analyze contract",
			"status", http.StatusInternalServerError, "error", err,
			"request_id", ctx.Request().Header.Get(echo.HeaderXRequestID))
		return ctx.String(http.StatusInternalServerError, "Failed to analyze contract")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (s *APIService) inscriptionHandler(ctx echo.Context) error {
	text, status, err := s.readText(ctx)
	if err != nil {
		return ctx.String(status, err.Error())
	}
	artifact, err := s.coreService.Generate(ctx.Request().Context(), text)
	if err != nil {
		return InscriptionError(ctx, "inscriptionHandler", err)
	}
	return Attachment(ctx, artifact)
}

func (s *APIService) placeholderHandler(ctx echo.Context) error {
	var req placeholderRequest
	if err := common.BindAndValidate(ctx, &req); err != nil {
		slog.Warn("placeholderHandler: invalid request", "status", http.StatusBadRequest, "error", err)
		return err
	}
	data, err := s.coreService.Placeholder(req.Size, req.Background, req.Foreground, req.Text)
	if err != nil {
		slog.Warn("placeholderHandler: failed to render placeholder",
			"status", http.StatusBadRequest, "size", req.Size, "error", err)
		return ctx.String(http.StatusBadRequest, "Invalid placeholder parameters")
	}
	// Cache for 7 days
	ctx.Response().Header().Set("Cache-Control", "public, max-age=604800, immutable")
	return ctx.Blob(http.StatusOK, mimePNG, data)
}

// readText reads the raw request body up to the configured limit. The error
// text is meant for the client.
func (s *APIService) readText(ctx echo.Context) (string, int, error) {
	limit := s.config.Analysis.MaxBodyBytes
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, limit+1))
	if err != nil {
		slog.Error("readText: failed to read request body", "status", http.StatusBadRequest, "error", err)
		return "", http.StatusBadRequest, errors.New("failed to read request body")
	}
	if int64(len(body)) > limit {
		slog.Warn("readText: request body too large", "status", http.StatusRequestEntityTooLarge, "limit", limit)
		return "", http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", limit)
	}
	return string(body), http.StatusOK, nil
}

// Attachment writes an inscription as a file download.
func Attachment(ctx echo.Context, artifact *inscription.Artifact) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(artifact.FileName, `"`, "")))
	return ctx.Blob(http.StatusOK, inscription.ContentType, artifact.Content)
}

// InscriptionError maps generator failures to plain text responses.
func InscriptionError(ctx echo.Context, handler string, err error) error {
	switch {
	case errors.Is(err, inscription.ErrEmptyInput):
		return ctx.String(http.StatusBadRequest, inscription.MsgEmptyInput)
	case errors.Is(err, inscription.ErrUnsafePayload):
		slog.Warn(handler+": refused unsafe contract text", "status", http.StatusUnprocessableEntity)
		return ctx.String(http.StatusUnprocessableEntity, "Contract text cannot contain script tags")
	default:
		slog.Error(handler+": failed to generate inscription", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to generate inscription")
	}
}
