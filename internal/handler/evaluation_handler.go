package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/evaluation"
	"github.com/noah-isme/salestrain-api/internal/middleware"
	"github.com/noah-isme/salestrain-api/internal/service"
	"github.com/noah-isme/salestrain-api/internal/utils"
)

// EvaluationHandler exposes answer grading.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Post("", h.evaluate)
	router.Post("/session", h.evaluateSession)
	router.Post("/quiz", h.gradeQuiz)
}

func (h *EvaluationHandler) evaluate(c *fiber.Ctx) error {
	var payload dto.EvaluationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Evaluate(middleware.RequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "answer evaluated", response)
}

func (h *EvaluationHandler) evaluateSession(c *fiber.Ctx) error {
	var payload dto.EvaluationSessionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.EvaluateSession(middleware.RequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session evaluated", response)
}

func (h *EvaluationHandler) gradeQuiz(c *fiber.Ctx) error {
	var payload dto.QuizSubmission
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.GradeQuiz(middleware.RequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz graded", response)
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	case errors.Is(err, service.ErrScenarioNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
	case errors.Is(err, service.ErrQuizScenario), errors.Is(err, service.ErrNotQuiz):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, evaluation.ErrUnknownStrategy):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("evaluation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate answer")
	}
}
