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

// AppealHandler exposes score appeals and their review.
type AppealHandler struct {
	service service.AppealService
	logger  zerolog.Logger
}

// NewAppealHandler constructs an appeal handler.
func NewAppealHandler(service service.AppealService, logger zerolog.Logger) *AppealHandler {
	return &AppealHandler{
		service: service,
		logger:  logger.With().Str("component", "appeal_handler").Logger(),
	}
}

// Register wires appeal routes.
func (h *AppealHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.submit)
	router.Post("/:id/review", h.review)
}

func (h *AppealHandler) list(c *fiber.Ctx) error {
	filter := dto.AppealFilter{
		Status:  strings.TrimSpace(c.Query("status")),
		Student: strings.TrimSpace(c.Query("student")),
	}

	appeals, err := h.service.List(middleware.RequestContext(c), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.OK(c, appeals, "appeals", fiber.Map{"count": len(appeals)})
}

func (h *AppealHandler) submit(c *fiber.Ctx) error {
	var payload dto.AppealSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	appeal, err := h.service.Submit(middleware.RequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "appeal submitted", appeal)
}

func (h *AppealHandler) review(c *fiber.Ctx) error {
	var payload dto.AppealReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	appeal, err := h.service.Review(middleware.RequestContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "appeal reviewed", appeal)
}

func (h *AppealHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	case errors.Is(err, service.ErrAppealScoreRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAppealNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "appeal not found")
	case errors.Is(err, service.ErrAppealReviewed):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("appeal request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process appeal")
	}
}
