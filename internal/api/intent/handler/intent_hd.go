package intentHandler

import (
	"IntentBridge/internal/api/intent"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/handlerUtil"
	jwtPkg "IntentBridge/pkg/jwt"
	"IntentBridge/pkg/log"
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 15 * time.Second

func (h *IntentHandler) ListIntents(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.intentService.ListIntents(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_intents")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *IntentHandler) GetTree(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.intentService.GetTree(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_intent_tree")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *IntentHandler) GetIntentByName(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	name, err := url.PathUnescape(ctx.Params("*"))
	if err != nil || name == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("intent name is required"), ctx.Path())
	}

	res, err := h.intentService.GetIntentByName(c, name)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_intent_by_name")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *IntentHandler) GetIntentByDisplayName(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	displayName, err := url.PathUnescape(ctx.Params("display_name"))
	if err != nil || displayName == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("display name is required"), ctx.Path())
	}

	res, err := h.intentService.GetIntentByDisplayName(c, displayName)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_intent_by_display_name")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *IntentHandler) Refresh(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	operator, err := jwtPkg.GetOperator(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"operator":   operator.Username,
	}).Info("Refreshing intent registry")

	res, err := h.intentService.Refresh(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "refresh_intents")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *IntentHandler) UpdateTrainingPhrases(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	operator, err := jwtPkg.GetOperator(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	displayName, err := url.PathUnescape(ctx.Params("display_name"))
	if err != nil || displayName == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("display name is required"), ctx.Path())
	}

	var req intents.UpdateTrainingPhrasesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id":   requestID,
		"operator":     operator.Username,
		"display_name": displayName,
	}).Info("Updating intent training phrases")

	res, err := h.intentService.UpdateTrainingPhrases(c, displayName, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_training_phrases")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *IntentHandler) BatchUpdateTrainingPhrases(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 2*requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if _, err := jwtPkg.GetOperator(ctx); err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var req intents.BatchTrainingPhrasesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.intentService.BatchUpdateTrainingPhrases(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "batch_update_training_phrases")
	}

	status := fiber.StatusOK
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
