package conversationHandler

import (
	"IntentBridge/internal/api/conversation"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/handlerUtil"
	"IntentBridge/pkg/log"
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 15 * time.Second

func (h *ConversationHandler) sessionID(ctx *fiber.Ctx) (string, error) {
	sessionID := ctx.Params("session_id")
	if err := h.validator.Var(sessionID, "required,max=36,printascii"); err != nil {
		return "", conversation.ErrInvalidSessionID
	}
	return sessionID, nil
}

func (h *ConversationHandler) DetectIntent(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req conversation.DetectIntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": req.SessionID,
		"contexts":   len(req.Contexts),
	}).Debug("Processing detect intent request")

	res, err := h.conversationService.DetectIntent(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "detect_intent")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ConversationHandler) ListContexts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID, err := h.sessionID(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_contexts")
	}

	res, err := h.conversationService.ListContexts(c, sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_contexts")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ConversationHandler) CreateContexts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID, err := h.sessionID(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_contexts")
	}

	var req conversation.CreateContextsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.conversationService.CreateContexts(c, sessionID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_contexts")
	}

	status := fiber.StatusCreated
	if res.Failed > 0 {
		status = fiber.StatusMultiStatus
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, status, res)
	}
}

func (h *ConversationHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID, err := h.sessionID(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_history")
	}

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	res, err := h.conversationService.GetHistory(c, sessionID, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
