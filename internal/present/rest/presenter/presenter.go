package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel/trace"

	hateoas "github.com/totegamma/hateoas-playground"
	"github.com/totegamma/hateoas-playground/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK writes an already serialized envelope. The body is tagged with an ETag,
// and a matching If-None-Match gets 304 without a body.
func OK(c echo.Context, body []byte) error {
	etag := ETag(body)
	c.Response().Header().Set("ETag", etag)
	if matches(c.Request().Header.Get("If-None-Match"), etag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}

func matches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// Error maps err to a status code.
func Error(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	default:
		return InternalError(c, err)
	}
}

func BadRequestMessage(c echo.Context, msg string) error {
	logAttrs(c, slog.LevelInfo, "Bad request", slog.String("error", msg))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	logAttrs(c, slog.LevelInfo, "Not found", slog.String("error", msg))
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

// InternalError hides construction and encoding details from the client.
func InternalError(c echo.Context, err error) error {
	kind := "internal"
	switch {
	case errors.Is(err, hateoas.ErrConstruction):
		kind = "construction"
	case errors.Is(err, hateoas.ErrEncoding):
		kind = "encoding"
	}
	logAttrs(c, slog.LevelError, "Internal error",
		slog.String("error", err.Error()),
		slog.String("kind", kind),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func logAttrs(c echo.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	ctx := c.Request().Context()
	attrs = append(attrs,
		slog.String("path", c.Request().URL.Path),
		slog.String("module", "rest"),
	)
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}
	slog.LogAttrs(ctx, level, msg, attrs...)
}
