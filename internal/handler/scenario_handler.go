package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/catalog"
	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/middleware"
	"github.com/noah-isme/salestrain-api/internal/service"
	"github.com/noah-isme/salestrain-api/internal/utils"
)

// ScenarioHandler exposes the scenario catalog.
type ScenarioHandler struct {
	service service.ScenarioService
	bank    catalog.Bank
	logger  zerolog.Logger
}

// NewScenarioHandler constructs a scenario handler. bank is what the seed endpoint writes.
func NewScenarioHandler(service service.ScenarioService, bank catalog.Bank, logger zerolog.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		service: service,
		bank:    bank,
		logger:  logger.With().Str("component", "scenario_handler").Logger(),
	}
}

// Register wires scenario routes.
func (h *ScenarioHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/seed", h.seed)
	router.Get("/:id", h.get)
	router.Put("/:id", h.upsert)
	router.Delete("/:id", h.remove)
}

func (h *ScenarioHandler) list(c *fiber.Ctx) error {
	filter := dto.ScenarioFilter{Category: strings.TrimSpace(c.Query("category"))}

	scenarios, err := h.service.List(middleware.RequestContext(c), filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.OK(c, scenarios, "scenarios", fiber.Map{"count": len(scenarios)})
}

func (h *ScenarioHandler) get(c *fiber.Ctx) error {
	scenario, err := h.service.Get(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "scenario", scenario)
}

func (h *ScenarioHandler) upsert(c *fiber.Ctx) error {
	var payload dto.ScenarioUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	scenario, err := h.service.Upsert(middleware.RequestContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "scenario saved", scenario)
}

func (h *ScenarioHandler) remove(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.RequestContext(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "scenario deleted", nil)
}

func (h *ScenarioHandler) seed(c *fiber.Ctx) error {
	overwrite, err := parseQueryBool(c, "overwrite")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid overwrite flag")
	}

	result, err := h.service.Seed(middleware.RequestContext(c), h.bank, overwrite)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "scenarios seeded", result)
}

func (h *ScenarioHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	case errors.Is(err, catalog.ErrInvalidScenario):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrScenarioNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("scenario request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process scenario request")
	}
}
