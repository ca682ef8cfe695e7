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

// TaskHandler exposes training task management and the learner task cards.
type TaskHandler struct {
	service service.TaskService
	logger  zerolog.Logger
}

// NewTaskHandler constructs a task handler.
func NewTaskHandler(service service.TaskService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger.With().Str("component", "task_handler").Logger(),
	}
}

// Register wires task routes.
func (h *TaskHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/official", h.official)
	router.Get("/:id", h.get)
	router.Put("/:id/assignees", h.assign)
	router.Patch("/:id/status", h.updateStatus)
	router.Delete("/:id", h.remove)
}

func (h *TaskHandler) list(c *fiber.Ctx) error {
	filter := dto.TaskFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Assignee: strings.TrimSpace(c.Query("assignee")),
	}

	tasks, err := h.service.List(middleware.RequestContext(c), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.OK(c, tasks, "tasks", fiber.Map{"count": len(tasks)})
}

func (h *TaskHandler) create(c *fiber.Ctx) error {
	var payload dto.TaskCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Create(middleware.RequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "task created", task)
}

func (h *TaskHandler) official(c *fiber.Ctx) error {
	cards, err := h.service.Official(middleware.RequestContext(c), strings.TrimSpace(c.Query("assignee")))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.OK(c, cards, "official tasks", fiber.Map{"count": len(cards)})
}

func (h *TaskHandler) get(c *fiber.Ctx) error {
	task, err := h.service.Get(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "task", task)
}

func (h *TaskHandler) assign(c *fiber.Ctx) error {
	var payload dto.TaskAssignRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Assign(middleware.RequestContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "task assigned", task)
}

func (h *TaskHandler) updateStatus(c *fiber.Ctx) error {
	var payload dto.TaskStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.UpdateStatus(middleware.RequestContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "task status updated", task)
}

func (h *TaskHandler) remove(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.RequestContext(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "task deleted", nil)
}

func (h *TaskHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	case errors.Is(err, service.ErrTaskSchedule):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTaskNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "task not found")
	case errors.Is(err, service.ErrTaskTransition):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("task request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process task")
	}
}
