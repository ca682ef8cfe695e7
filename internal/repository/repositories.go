package repository

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/models"
	"github.com/noah-isme/salestrain-api/internal/store"
)

// Topics double as key prefixes and change-event topics.
const (
	TopicScenarios = "scenarios"
	TopicKnowledge = "knowledge"
	TopicAppeals   = "appeals"
	TopicDialogues = "dialogues"
	TopicTasks     = "tasks"
)

// ScenarioRepository persists the scenario catalog.
type ScenarioRepository = Repository[models.Scenario]

// KnowledgeRepository persists knowledge base entries.
type KnowledgeRepository = Repository[models.KnowledgeEntry]

// AppealRepository persists score appeals.
type AppealRepository = Repository[models.Appeal]

// DialogueSessionRepository persists dialogue practice sessions.
type DialogueSessionRepository = Repository[models.DialogueSession]

// TaskRepository persists training tasks.
type TaskRepository = Repository[models.Task]

// NewScenarioRepository constructs the scenario repository.
func NewScenarioRepository(kv store.KV, publisher store.Publisher, logger zerolog.Logger) ScenarioRepository {
	return NewKVRepository[models.Scenario](kv, publisher, TopicScenarios, 0, logger)
}

// NewKnowledgeRepository constructs the knowledge base repository.
func NewKnowledgeRepository(kv store.KV, publisher store.Publisher, logger zerolog.Logger) KnowledgeRepository {
	return NewKVRepository[models.KnowledgeEntry](kv, publisher, TopicKnowledge, 0, logger)
}

// NewAppealRepository constructs the appeal repository.
func NewAppealRepository(kv store.KV, publisher store.Publisher, logger zerolog.Logger) AppealRepository {
	return NewKVRepository[models.Appeal](kv, publisher, TopicAppeals, 0, logger)
}

// NewDialogueSessionRepository constructs the dialogue session repository. Sessions
// expire after ttl.
func NewDialogueSessionRepository(kv store.KV, publisher store.Publisher, ttl time.Duration, logger zerolog.Logger) DialogueSessionRepository {
	return NewKVRepository[models.DialogueSession](kv, publisher, TopicDialogues, ttl, logger)
}

// NewTaskRepository constructs the training task repository.
func NewTaskRepository(kv store.KV, publisher store.Publisher, logger zerolog.Logger) TaskRepository {
	return NewKVRepository[models.Task](kv, publisher, TopicTasks, 0, logger)
}
