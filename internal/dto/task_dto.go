package dto

import (
	"time"

	"github.com/noah-isme/salestrain-api/internal/models"
)

// TaskFilter narrows task listings.
type TaskFilter struct {
	Status   string
	Assignee string
}

// EmployeeInput identifies an assignee.
type EmployeeInput struct {
	ID         string `json:"id" validate:"required,max=64"`
	Name       string `json:"name" validate:"required,max=120"`
	Department string `json:"department" validate:"omitempty,max=120"`
	Position   string `json:"position" validate:"omitempty,max=120"`
	Email      string `json:"email" validate:"omitempty,email,max=200"`
}

// TaskCreateRequest issues a new training task.
type TaskCreateRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"omitempty,max=4000"`
	Assignees   []EmployeeInput `json:"assignees" validate:"omitempty,max=200,dive"`
	StartDate   string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	Deadline    string          `json:"deadline" validate:"required,datetime=2006-01-02"`
	Supervisor  string          `json:"supervisor" validate:"required,max=120"`
	Type        string          `json:"type" validate:"required,oneof=销售基础训练 销售角色实训"`
	Mode        string          `json:"mode" validate:"required,oneof=选择题模式 开放问答模式 自由对话练习"`
}

// TaskAssignRequest adds learners to a task.
type TaskAssignRequest struct {
	Assignees []EmployeeInput `json:"assignees" validate:"required,min=1,max=200,dive"`
}

// TaskStatusRequest moves a task to a new status.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// TaskResponse serialises a task for the management center.
type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Assignees   []models.Employee `json:"assignees"`
	StartDate   string            `json:"start_date"`
	Deadline    string            `json:"deadline"`
	Supervisor  string            `json:"supervisor"`
	Status      string            `json:"status"`
	Type        string            `json:"type"`
	Mode        string            `json:"mode"`
	Origin      string            `json:"origin"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTaskResponse converts a task into its response shape.
func NewTaskResponse(task models.Task) TaskResponse {
	assignees := task.Assignees
	if assignees == nil {
		assignees = []models.Employee{}
	}
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Assignees:   assignees,
		StartDate:   task.StartDate,
		Deadline:    task.Deadline,
		Supervisor:  task.Supervisor,
		Status:      task.Status,
		Type:        task.Type,
		Mode:        task.Mode,
		Origin:      task.Origin,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskResponses converts a slice of tasks.
func NewTaskResponses(tasks []models.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}
	return responses
}

// OfficialTaskResponse is the learner-facing card of an issued task.
type OfficialTaskResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Duration    string   `json:"duration"`
	Completed   bool     `json:"completed"`
	Materials   []string `json:"materials"`
	Origin      string   `json:"origin"`
	Status      string   `json:"status"`
	StartDate   string   `json:"start_date"`
	Deadline    string   `json:"deadline"`
	Supervisor  string   `json:"supervisor"`
	Type        string   `json:"type"`
	Mode        string   `json:"mode"`
	Assignees   []string `json:"assignees"`
}
