package models

import "time"

// Task statuses, in the order a task moves through them.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task kinds and practice modes offered to learners.
const (
	TaskTypeBasics   = "销售基础训练"
	TaskTypeRolePlay = "销售角色实训"

	TaskModeChoice   = "选择题模式"
	TaskModeOpenQA   = "开放问答模式"
	TaskModeDialogue = "自由对话练习"

	// TaskOriginOfficial marks tasks issued by the management center.
	TaskOriginOfficial = "官方任务"
)

// Employee is a learner a task can be assigned to.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Task is a training assignment issued by a supervisor.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Assignees   []Employee `json:"assignees"`
	StartDate   string     `json:"start_date"`
	Deadline    string     `json:"deadline"`
	Supervisor  string     `json:"supervisor"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	Mode        string     `json:"mode"`
	Origin      string     `json:"origin"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AssignedTo reports whether the employee with id is among the assignees.
func (t Task) AssignedTo(id string) bool {
	for _, assignee := range t.Assignees {
		if assignee.ID == id {
			return true
		}
	}
	return false
}

// TaskStatusRank orders statuses so transitions can only move forward.
func TaskStatusRank(status string) int {
	switch status {
	case TaskStatusPending:
		return 0
	case TaskStatusInProgress:
		return 1
	case TaskStatusCompleted:
		return 2
	default:
		return -1
	}
}
