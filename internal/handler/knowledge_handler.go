package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/middleware"
	"github.com/noah-isme/salestrain-api/internal/service"
	"github.com/noah-isme/salestrain-api/internal/utils"
)

// KnowledgeHandler exposes the knowledge base.
type KnowledgeHandler struct {
	service service.KnowledgeService
	logger  zerolog.Logger
}

// NewKnowledgeHandler constructs a knowledge base handler.
func NewKnowledgeHandler(service service.KnowledgeService, logger zerolog.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		service: service,
		logger:  logger.With().Str("component", "knowledge_handler").Logger(),
	}
}

// Register wires knowledge base routes.
func (h *KnowledgeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Delete("/:id", h.remove)
}

func (h *KnowledgeHandler) list(c *fiber.Ctx) error {
	filter := dto.KnowledgeFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("q")),
	}

	entries, err := h.service.List(middleware.RequestContext(c), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.OK(c, entries, "knowledge entries", fiber.Map{"count": len(entries)})
}

func (h *KnowledgeHandler) create(c *fiber.Ctx) error {
	var payload dto.KnowledgeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.Create(middleware.RequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "knowledge entry created", entry)
}

func (h *KnowledgeHandler) remove(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.RequestContext(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "knowledge entry deleted", nil)
}

func (h *KnowledgeHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	case errors.Is(err, service.ErrKnowledgeEmpty):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrKnowledgeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "knowledge entry not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("knowledge request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process knowledge request")
	}
}
