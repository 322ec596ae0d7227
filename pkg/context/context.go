package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type ctxKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	requestID, ok := ctx.Value(ctxKey{}).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

// FromFiberCtx returns the request's user context. The request-id middleware has already
// stored the id in it.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	return c.UserContext()
}
