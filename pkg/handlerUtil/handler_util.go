package handlerUtil

import (
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/intent"
	"IntentBridge/pkg/log"
	"IntentBridge/pkg/response"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle writes the response for err. Domain errors answer with their own message; the
// wrapped cause is only logged.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		status := response.StatusOf(err)
		fields["code"] = status
		if status >= http.StatusInternalServerError {
			h.logger.WithFields(fields).Error("Operation failed with error response")
		} else {
			h.logger.WithFields(fields).Warn("Operation failed with error response")
		}
		return c.Status(status).JSON(ErrorResponse{Error: respErr.Error()})
	}

	var notFound *intent.NotFoundError
	if errors.As(err, &notFound) {
		h.logger.WithFields(fields).Warn("Intent not found")
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: notFound.Error(),
			Code:  "INTENT_NOT_FOUND",
		})
	}

	var cfgErr *dialogflow.ConfigError
	if errors.As(err, &cfgErr) {
		h.logger.WithFields(fields).Error("Agent client is misconfigured")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Agent client is misconfigured",
			Code:  "AGENT_CONFIG",
		})
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		fields["upstream_code"] = apiErr.Code
		h.logger.WithFields(fields).Warn("Agent API call failed")

		status := fiber.StatusBadGateway
		switch apiErr.Code {
		case http.StatusNotFound, http.StatusBadRequest:
			status = apiErr.Code
		}
		return c.Status(status).JSON(ErrorResponse{
			Error:   "Agent API call failed",
			Code:    "AGENT_API",
			Details: apiErr.Message,
		})
	}

	var opErr *dialogflow.OperationError
	if errors.As(err, &opErr) {
		h.logger.WithFields(fields).Warn("Agent operation failed")
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "Agent operation failed",
			Code:    "AGENT_OPERATION",
			Details: opErr.Message,
		})
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
