package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("usecase")

// cached serves key from c when present, otherwise builds and stores it.
// Cache failures are logged and never fail the request.
func cached(ctx context.Context, c ResponseCache, key string, build func() ([]byte, error)) ([]byte, error) {
	span := trace.SpanFromContext(ctx)

	if c != nil {
		body, ok, err := c.Get(ctx, key)
		if err != nil {
			slog.WarnContext(
				ctx, "response cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
				slog.String("module", "usecase"),
			)
		} else if ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return body, nil
		}
	}

	body, err := build()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	if c != nil {
		if err := c.Set(ctx, key, body); err != nil {
			slog.WarnContext(
				ctx, "response cache write failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
				slog.String("module", "usecase"),
			)
		}
	}

	return body, nil
}
