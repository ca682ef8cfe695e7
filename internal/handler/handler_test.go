package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/salestrain-api/internal/catalog"
	"github.com/noah-isme/salestrain-api/internal/config"
	"github.com/noah-isme/salestrain-api/internal/handler"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/router"
	"github.com/noah-isme/salestrain-api/internal/service"
	"github.com/noah-isme/salestrain-api/internal/store"
)

type envelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    json.RawMessage      `json:"data"`
	Meta    map[string]any       `json:"meta"`
	Details []handler.FieldError `json:"details"`
}

func testConfig() config.Config {
	return config.Config{
		AppName:            "SalesTrain API",
		AppEnv:             "test",
		StoreBackend:       store.BackendMemory,
		DefaultStrategy:    "coverage-length",
		DialogueSessionTTL: time.Hour,
	}
}

func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *store.Broker) {
	t.Helper()

	logger := zerolog.Nop()
	kv := store.NewMemoryStore()
	broker := store.NewBroker(store.BrokerOptions{Logger: logger})
	validate := validator.New()

	scenarioRepo := repository.NewScenarioRepository(kv, broker, logger)
	knowledgeRepo := repository.NewKnowledgeRepository(kv, broker, logger)
	appealRepo := repository.NewAppealRepository(kv, broker, logger)
	sessionRepo := repository.NewDialogueSessionRepository(kv, broker, cfg.DialogueSessionTTL, logger)
	taskRepo := repository.NewTaskRepository(kv, broker, logger)

	bank, err := catalog.Default()
	require.NoError(t, err)

	scenarioService := service.NewScenarioService(scenarioRepo, validate, logger)
	_, err = scenarioService.Seed(context.Background(), bank, false)
	require.NoError(t, err)

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		EvaluationHandler: handler.NewEvaluationHandler(service.NewEvaluationService(scenarioRepo, validate, cfg.DefaultStrategy, logger), logger),
		ScenarioHandler:   handler.NewScenarioHandler(scenarioService, bank, logger),
		KnowledgeHandler:  handler.NewKnowledgeHandler(service.NewKnowledgeService(knowledgeRepo, validate, logger), logger),
		AppealHandler:     handler.NewAppealHandler(service.NewAppealService(appealRepo, validate, logger), logger),
		DialogueHandler:   handler.NewDialogueHandler(service.NewDialogueService(sessionRepo, scenarioRepo, validate, logger), logger),
		TaskHandler:       handler.NewTaskHandler(service.NewTaskService(taskRepo, validate, logger), logger),
		EventsHandler:     handler.NewEventsHandler(broker, logger),
	})

	return app, broker
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, ok := payload.(string)
		if !ok {
			encoded, err := json.Marshal(payload)
			require.NoError(t, err)
			raw = string(encoded)
		}
		body = bytes.NewReader([]byte(raw))
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded envelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	return resp, decoded
}

func decodeData(t *testing.T, env envelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, target))
}
