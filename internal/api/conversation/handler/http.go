package conversationHandler

import (
	conversationService "IntentBridge/internal/api/conversation/service"
	"IntentBridge/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ConversationHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	conversationService conversationService.IConversationService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs conversationService.IConversationService,
) *ConversationHandler {
	return &ConversationHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		conversationService: cs,
	}
}

func (h *ConversationHandler) Start(srv fiber.Router) {
	conversation := srv.Group("/conversation")

	conversation.Post("/detect", h.middleware.NewRateLimiter, h.DetectIntent)
	conversation.Get("/sessions/:session_id/contexts", h.ListContexts)
	conversation.Post("/sessions/:session_id/contexts", h.middleware.NewRateLimiter, h.CreateContexts)
	conversation.Get("/sessions/:session_id/history", h.GetHistory)

	// Called by the agent itself
	conversation.Post("/webhook", h.Webhook)
}
