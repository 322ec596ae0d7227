package intentHandler

import (
	intentService "IntentBridge/internal/api/intent/service"
	"IntentBridge/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type IntentHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	intentService intentService.IIntentService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	is intentService.IIntentService,
) *IntentHandler {
	return &IntentHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		intentService: is,
	}
}

func (h *IntentHandler) Start(srv fiber.Router) {
	intents := srv.Group("/intents")

	intents.Get("", h.ListIntents)
	intents.Get("/tree", h.GetTree)
	intents.Get("/name/*", h.GetIntentByName)
	intents.Get("/display/:display_name", h.GetIntentByDisplayName)

	// Mutations reach the agent and require an operator token
	intents.Post("/refresh", h.middleware.NewTokenMiddleware, h.Refresh)
	intents.Put("/display/:display_name/training-phrases", h.middleware.NewTokenMiddleware, h.UpdateTrainingPhrases)
	intents.Post("/training-phrases/batch", h.middleware.NewTokenMiddleware, h.BatchUpdateTrainingPhrases)
}
