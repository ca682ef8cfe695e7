package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/salestrain-api/internal/models"
	"github.com/noah-isme/salestrain-api/internal/store"
)

type recordingPublisher struct {
	events []store.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event store.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func TestKVRepositoryRoundTripAndEvents(t *testing.T) {
	publisher := &recordingPublisher{}
	repo := NewKnowledgeRepository(store.NewMemoryStore(), publisher, zerolog.Nop())
	ctx := context.Background()

	entry := models.KnowledgeEntry{ID: "kb-1", Title: "Cloud firewall overview", Category: "product", Tags: []string{"firewall"}}
	require.NoError(t, repo.Put(ctx, entry.ID, entry))

	stored, err := repo.Get(ctx, "kb-1")
	require.NoError(t, err)
	require.Equal(t, entry.Title, stored.Title)
	require.Equal(t, []string{"firewall"}, stored.Tags)

	require.NoError(t, repo.Put(ctx, "kb-2", models.KnowledgeEntry{ID: "kb-2", Title: "Pricing"}))
	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "kb-1", items[0].ID)

	require.NoError(t, repo.Delete(ctx, "kb-1"))
	_, err = repo.Get(ctx, "kb-1")
	require.True(t, errors.Is(err, store.ErrNotFound))

	require.Len(t, publisher.events, 3)
	require.Equal(t, store.Event{Topic: TopicKnowledge, Key: "kb-1", Action: store.ActionPut}, publisher.events[0])
	require.Equal(t, store.ActionDelete, publisher.events[2].Action)
}

func TestKVRepositoryDeleteMissing(t *testing.T) {
	publisher := &recordingPublisher{}
	repo := NewAppealRepository(store.NewMemoryStore(), publisher, zerolog.Nop())

	err := repo.Delete(context.Background(), "nope")
	require.True(t, errors.Is(err, store.ErrNotFound))
	require.Empty(t, publisher.events)
}

func TestKVRepositoryRelayFailureDoesNotFailWrite(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("nats down")}
	repo := NewScenarioRepository(store.NewMemoryStore(), publisher, zerolog.Nop())

	require.NoError(t, repo.Put(context.Background(), "intro", models.Scenario{ID: "intro", Title: "Intro"}))
	_, err := repo.Get(context.Background(), "intro")
	require.NoError(t, err)
}

func TestKVRepositorySkipsCorruptEntries(t *testing.T) {
	kv := store.NewMemoryStore()
	repo := NewScenarioRepository(kv, nil, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "scenarios:broken", []byte("not-json"), 0))
	require.NoError(t, repo.Put(ctx, "intro", models.Scenario{ID: "intro"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "intro", items[0].ID)
}

func TestDialogueSessionsExpire(t *testing.T) {
	kv := store.NewMemoryStore()
	repo := NewDialogueSessionRepository(kv, nil, time.Nanosecond, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s-1", models.DialogueSession{ID: "s-1"}))
	time.Sleep(time.Millisecond)

	_, err := repo.Get(ctx, "s-1")
	require.True(t, errors.Is(err, store.ErrNotFound))
}

func TestTaskRepositoryPublishesOnTasksTopic(t *testing.T) {
	publisher := &recordingPublisher{}
	kv := store.NewMemoryStore()
	repo := NewTaskRepository(kv, publisher, zerolog.Nop())
	ctx := context.Background()

	task := models.Task{ID: "t-1", Title: "Objection handling", Status: models.TaskStatusPending}
	require.NoError(t, repo.Put(ctx, task.ID, task))

	raw, err := kv.Get(ctx, "tasks:t-1")
	require.NoError(t, err)
	require.Contains(t, string(raw), `"Objection handling"`)

	require.Equal(t, []store.Event{{Topic: TopicTasks, Key: "t-1", Action: store.ActionPut}}, publisher.events)
}
