package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/models"
	"github.com/noah-isme/salestrain-api/internal/store"
)

func newTaskPayload() dto.TaskCreateRequest {
	return dto.TaskCreateRequest{
		Title:       "云盾防火墙产品介绍",
		Description: "完成开放问答训练",
		Assignees:   []dto.EmployeeInput{{ID: "e1", Name: "张伟", Department: "销售部"}},
		StartDate:   "2024-05-06",
		Deadline:    "2024-05-20",
		Supervisor:  "陈总监",
		Type:        models.TaskTypeBasics,
		Mode:        models.TaskModeOpenQA,
	}
}

func TestTaskHandler_Lifecycle(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/tasks", newTaskPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var task dto.TaskResponse
	decodeData(t, env, &task)
	require.Equal(t, models.TaskStatusPending, task.Status)

	resp, env = doJSON(t, app, http.MethodPut, "/api/v1/tasks/"+task.ID+"/assignees", dto.TaskAssignRequest{
		Assignees: []dto.EmployeeInput{{ID: "e2", Name: "李娜"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, env, &task)
	require.Len(t, task.Assignees, 2)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/tasks?assignee=e2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), env.Meta["count"])

	resp, env = doJSON(t, app, http.MethodPatch, "/api/v1/tasks/"+task.ID+"/status", dto.TaskStatusRequest{Status: models.TaskStatusCompleted})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, env, &task)
	require.Equal(t, models.TaskStatusCompleted, task.Status)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/tasks/"+task.ID+"/status", dto.TaskStatusRequest{Status: models.TaskStatusInProgress})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/tasks/official?assignee=e1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cards []dto.OfficialTaskResponse
	decodeData(t, env, &cards)
	require.Len(t, cards, 1)
	require.Equal(t, "已完成", cards[0].Status)
	require.True(t, cards[0].Completed)
	require.Equal(t, []string{"张伟", "李娜"}, cards[0].Assignees)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/tasks/"+task.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/tasks/"+task.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/tasks/"+task.ID, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTaskHandler_Errors(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	invalid := newTaskPayload()
	invalid.Mode = "video"
	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/tasks", invalid)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "validation failed", env.Message)
	require.NotEmpty(t, env.Details)

	backwards := newTaskPayload()
	backwards.Deadline = "2024-05-01"
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/tasks", backwards)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/tasks", "{not json")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid payload", env.Message)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/tasks/missing/status", dto.TaskStatusRequest{Status: models.TaskStatusCompleted})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/tasks/missing", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTaskHandler_PublishesTaskEvents(t *testing.T) {
	app, broker := newTestApp(t, testConfig())

	events, cancel := broker.Subscribe("tasks")
	defer cancel()

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/tasks", newTaskPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var task dto.TaskResponse
	decodeData(t, env, &task)

	select {
	case event := <-events:
		require.Equal(t, store.Event{Topic: "tasks", Key: task.ID, Action: store.ActionPut}, store.Event{Topic: event.Topic, Key: event.Key, Action: event.Action})
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for task event")
	}

	select {
	case extra := <-events:
		t.Fatalf("unexpected second event: %+v", extra)
	default:
	}
}
