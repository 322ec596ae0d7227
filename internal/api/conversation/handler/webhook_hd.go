package conversationHandler

import (
	"IntentBridge/internal/api/conversation"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/handlerUtil"
	"IntentBridge/pkg/log"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// The agent gives a webhook five seconds to answer.
const webhookTimeout = 5 * time.Second

func (h *ConversationHandler) Webhook(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), webhookTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req conversation.WebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"response_id": req.ResponseID,
		"intent":      req.QueryResult.Intent.DisplayName,
	}).Debug("Processing fulfillment webhook")

	res, err := h.conversationService.Fulfill(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "fulfillment_webhook")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
