package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/models"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/store"
)

var (
	// ErrTaskNotFound indicates the task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskTransition indicates a status change that moves a task backwards.
	ErrTaskTransition = errors.New("task status cannot move backwards")
	// ErrTaskSchedule indicates a deadline before the start date.
	ErrTaskSchedule = errors.New("task deadline precedes start date")
)

const taskDateLayout = "2006-01-02"

// Learner-facing defaults of an official task card.
const (
	officialDifficulty = "中级"
	officialDuration   = "45分钟"
	officialMaterial   = "任务说明"
)

var officialStatusLabels = map[string]string{
	models.TaskStatusPending:    "开始学习",
	models.TaskStatusInProgress: "继续学习",
	models.TaskStatusCompleted:  "已完成",
}

// TaskService manages training tasks issued from the management center.
type TaskService interface {
	Create(ctx context.Context, req dto.TaskCreateRequest) (dto.TaskResponse, error)
	List(ctx context.Context, filter dto.TaskFilter) ([]dto.TaskResponse, error)
	Get(ctx context.Context, id string) (dto.TaskResponse, error)
	Assign(ctx context.Context, id string, req dto.TaskAssignRequest) (dto.TaskResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.TaskStatusRequest) (dto.TaskResponse, error)
	Delete(ctx context.Context, id string) error
	Official(ctx context.Context, assignee string) ([]dto.OfficialTaskResponse, error)
}

type taskService struct {
	repo      repository.TaskRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewTaskService constructs the task management service.
func NewTaskService(repo repository.TaskRepository, validator *validator.Validate, logger zerolog.Logger) TaskService {
	return &taskService{
		repo:      repo,
		validator: validator,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "task_service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *taskService) Create(ctx context.Context, req dto.TaskCreateRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TaskResponse{}, err
	}
	if err := checkSchedule(req.StartDate, req.Deadline); err != nil {
		return dto.TaskResponse{}, err
	}

	now := s.now()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       plainText(s.policy, req.Title),
		Description: plainText(s.policy, req.Description),
		Assignees:   s.mergeAssignees(nil, req.Assignees),
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		Supervisor:  plainText(s.policy, req.Supervisor),
		Status:      models.TaskStatusPending,
		Type:        req.Type,
		Mode:        req.Mode,
		Origin:      models.TaskOriginOfficial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Put(ctx, task.ID, task); err != nil {
		return dto.TaskResponse{}, err
	}

	s.logger.Info().Str("task_id", task.ID).Int("assignees", len(task.Assignees)).Msg("task created")
	return dto.NewTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context, filter dto.TaskFilter) ([]dto.TaskResponse, error) {
	tasks, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewTaskResponses(tasks), nil
}

func (s *taskService) Get(ctx context.Context, id string) (dto.TaskResponse, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return dto.TaskResponse{}, err
	}
	return dto.NewTaskResponse(task), nil
}

// Assign adds learners to a task. Assignees already on the task keep their entry.
func (s *taskService) Assign(ctx context.Context, id string, req dto.TaskAssignRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TaskResponse{}, err
	}

	task, err := s.load(ctx, id)
	if err != nil {
		return dto.TaskResponse{}, err
	}

	task.Assignees = s.mergeAssignees(task.Assignees, req.Assignees)
	task.UpdatedAt = s.now()
	if err := s.repo.Put(ctx, task.ID, task); err != nil {
		return dto.TaskResponse{}, err
	}

	s.logger.Info().Str("task_id", task.ID).Int("assignees", len(task.Assignees)).Msg("task assigned")
	return dto.NewTaskResponse(task), nil
}

// UpdateStatus moves a task forward through pending, in-progress and completed.
// Repeating the current status is a no-op.
func (s *taskService) UpdateStatus(ctx context.Context, id string, req dto.TaskStatusRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TaskResponse{}, err
	}

	task, err := s.load(ctx, id)
	if err != nil {
		return dto.TaskResponse{}, err
	}
	if task.Status == req.Status {
		return dto.NewTaskResponse(task), nil
	}
	if models.TaskStatusRank(req.Status) < models.TaskStatusRank(task.Status) {
		return dto.TaskResponse{}, fmt.Errorf("%w: %s to %s", ErrTaskTransition, task.Status, req.Status)
	}

	previous := task.Status
	task.Status = req.Status
	task.UpdatedAt = s.now()
	if err := s.repo.Put(ctx, task.ID, task); err != nil {
		return dto.TaskResponse{}, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("from", previous).Str("to", task.Status).Msg("task status updated")
	return dto.NewTaskResponse(task), nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

// Official projects tasks into the learner's task cards, optionally only those
// assigned to one employee.
func (s *taskService) Official(ctx context.Context, assignee string) ([]dto.OfficialTaskResponse, error) {
	tasks, err := s.filtered(ctx, dto.TaskFilter{Assignee: assignee})
	if err != nil {
		return nil, err
	}

	cards := make([]dto.OfficialTaskResponse, 0, len(tasks))
	for _, task := range tasks {
		cards = append(cards, officialCard(task))
	}
	return cards, nil
}

// filtered lists tasks matching filter, newest first.
func (s *taskService) filtered(ctx context.Context, filter dto.TaskFilter) ([]models.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Assignee != "" && !task.AssignedTo(filter.Assignee) {
			continue
		}
		matched = append(matched, task)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *taskService) load(ctx context.Context, id string) (models.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *taskService) mergeAssignees(current []models.Employee, additions []dto.EmployeeInput) []models.Employee {
	merged := make([]models.Employee, 0, len(current)+len(additions))
	seen := make(map[string]struct{}, cap(merged))
	for _, employee := range current {
		seen[employee.ID] = struct{}{}
		merged = append(merged, employee)
	}
	for _, input := range additions {
		if _, dup := seen[input.ID]; dup {
			continue
		}
		seen[input.ID] = struct{}{}
		merged = append(merged, models.Employee{
			ID:         input.ID,
			Name:       plainText(s.policy, input.Name),
			Department: plainText(s.policy, input.Department),
			Position:   plainText(s.policy, input.Position),
			Email:      input.Email,
		})
	}
	return merged
}

func officialCard(task models.Task) dto.OfficialTaskResponse {
	names := make([]string, 0, len(task.Assignees))
	for _, assignee := range task.Assignees {
		names = append(names, assignee.Name)
	}

	return dto.OfficialTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Difficulty:  officialDifficulty,
		Duration:    officialDuration,
		Completed:   task.Status == models.TaskStatusCompleted,
		Materials:   []string{officialMaterial},
		Origin:      task.Origin,
		Status:      officialStatusLabels[task.Status],
		StartDate:   task.StartDate,
		Deadline:    task.Deadline,
		Supervisor:  task.Supervisor,
		Type:        task.Type,
		Mode:        task.Mode,
		Assignees:   names,
	}
}

func checkSchedule(startDate, deadline string) error {
	start, err := time.Parse(taskDateLayout, startDate)
	if err != nil {
		return err
	}
	end, err := time.Parse(taskDateLayout, deadline)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %s before %s", ErrTaskSchedule, deadline, startDate)
	}
	return nil
}
