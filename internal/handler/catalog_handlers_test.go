package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/handler"
	"github.com/noah-isme/salestrain-api/internal/models"
)

func TestHealthHandler(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "SalesTrain API", resp.Header.Get("X-Application"))

	var health handler.HealthResponse
	decodeData(t, env, &health)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "memory", health.Store)
}

func TestScenarioHandler_CRUD(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/scenarios?category=open-qa", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, float64(3), env.Meta["count"])

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/scenarios/boss-report", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var scenario models.Scenario
	decodeData(t, env, &scenario)
	require.Equal(t, "向上级汇报", scenario.Title)

	unbalanced := dto.ScenarioUpsertRequest{
		Title:    "Unbalanced",
		Category: "open-qa",
		Prompt:   "p",
		Criteria: []dto.CriterionInput{{ID: "a", Name: "A", Weight: 50}},
	}
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/scenarios/unbalanced", unbalanced)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	unbalanced.Criteria[0].Weight = 100
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/scenarios/unbalanced", unbalanced)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/scenarios/unbalanced", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/scenarios/unbalanced", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/scenarios/seed", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var seeded dto.SeedResponse
	decodeData(t, env, &seeded)
	require.Equal(t, 9, seeded.Skipped)
}

func TestKnowledgeHandler_CreateListDelete(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/knowledge", dto.KnowledgeCreateRequest{
		Title:    "Cloud firewall FAQ",
		Category: "product",
		Content:  "支持混合云部署",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.KnowledgeResponse
	decodeData(t, env, &created)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/knowledge?q="+url.QueryEscape("混合云"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), env.Meta["count"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/knowledge", dto.KnowledgeCreateRequest{Title: "missing body"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/knowledge/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/knowledge/"+created.ID, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAppealHandler_ReviewFlow(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/appeals", dto.AppealSubmitRequest{
		Student:       "Wang Fang",
		Session:       "qa-pricing",
		OriginalScore: 58,
		ScoreItem:     "报价信息",
		Reason:        "The ROI comparison was included.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var appeal dto.AppealResponse
	decodeData(t, env, &appeal)

	reviewPath := "/api/v1/appeals/" + appeal.ID + "/review"
	resp, _ = doJSON(t, app, http.MethodPost, reviewPath, map[string]string{"decision": "approve"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodPost, reviewPath, map[string]interface{}{"decision": "approve", "new_score": 72})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, env, &appeal)
	require.Equal(t, models.AppealStatusApproved, appeal.Status)

	resp, _ = doJSON(t, app, http.MethodPost, reviewPath, map[string]string{"decision": "reject"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/appeals?status=approved", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), env.Meta["count"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/appeals/unknown/review", map[string]string{"decision": "reject"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDialogueHandler_Session(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/dialogues", dto.DialogueStartRequest{ScenarioID: "budget-inquiry"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var session dto.DialogueSessionResponse
	decodeData(t, env, &session)
	require.Equal(t, "财务总监", session.Role)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/dialogues/"+session.ID+"/messages", dto.DialogueReplyRequest{Message: "我们的方案性价比高，投资回报周期短"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, env, &session)
	require.Equal(t, 50, session.Progress)
	require.Len(t, session.Messages, 3)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/dialogues/"+session.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/dialogues", dto.DialogueStartRequest{ScenarioID: "qa-pricing"})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/dialogues/missing", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
