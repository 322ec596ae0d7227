package middleware

import (
	"IntentBridge/internal/entity"
	jwtPkg "IntentBridge/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

type tokenMiddleware struct {
	secretEnvKey string
}

func newTokenMiddleware(secretEnvKey string) *tokenMiddleware {
	return &tokenMiddleware{secretEnvKey: secretEnvKey}
}

func (m *middleware) unauthorized(ctx *fiber.Ctx, reason string) error {
	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"client_ip":  ctx.IP(),
		"error":      reason,
	}).Warn("Token check failed")

	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

// NewTokenMiddleware verifies the bearer token and stores the operator it names.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return m.unauthorized(ctx, "Authorization header is missing")
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, m.token.secretEnvKey)
	if err != nil {
		return m.unauthorized(ctx, err.Error())
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return m.unauthorized(ctx, "Invalid token claims")
	}

	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return m.unauthorized(ctx, "Token claims are missing required fields")
	}

	ctx.Locals(jwtPkg.OperatorLocalsKey, entity.Operator{
		ID:       id,
		Username: username,
	})

	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"operator":   username,
	}).Debug("Authentication successful")

	return ctx.Next()
}
