package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/middleware"
	"github.com/noah-isme/salestrain-api/internal/service"
	"github.com/noah-isme/salestrain-api/internal/utils"
)

// DialogueHandler exposes dialogue practice sessions.
type DialogueHandler struct {
	service service.DialogueService
	logger  zerolog.Logger
}

// NewDialogueHandler constructs a dialogue handler.
func NewDialogueHandler(service service.DialogueService, logger zerolog.Logger) *DialogueHandler {
	return &DialogueHandler{
		service: service,
		logger:  logger.With().Str("component", "dialogue_handler").Logger(),
	}
}

// Register wires dialogue routes.
func (h *DialogueHandler) Register(router fiber.Router) {
	router.Post("", h.start)
	router.Get("/:id", h.get)
	router.Post("/:id/messages", h.reply)
}

func (h *DialogueHandler) start(c *fiber.Ctx) error {
	var payload dto.DialogueStartRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Start(middleware.RequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "dialogue started", session)
}

func (h *DialogueHandler) get(c *fiber.Ctx) error {
	session, err := h.service.Get(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "dialogue session", session)
}

func (h *DialogueHandler) reply(c *fiber.Ctx) error {
	var payload dto.DialogueReplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Reply(middleware.RequestContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "dialogue turn scored", session)
}

func (h *DialogueHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	case errors.Is(err, service.ErrDialogueNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "dialogue session not found")
	case errors.Is(err, service.ErrScenarioNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
	case errors.Is(err, service.ErrDialogueUnavailable):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDialogueCompleted):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("dialogue request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process dialogue")
	}
}
