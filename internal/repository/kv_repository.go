package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/store"
)

// Repository is typed CRUD over the key-value store.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	Put(ctx context.Context, id string, item T) error
	Delete(ctx context.Context, id string) error
}

// KVRepository stores JSON-encoded items under "<topic>:<id>" and announces every
// write on the topic.
type KVRepository[T any] struct {
	kv        store.KV
	publisher store.Publisher
	topic     string
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewKVRepository builds a repository. A nil publisher disables change events; a zero ttl
// keeps items until deleted.
func NewKVRepository[T any](kv store.KV, publisher store.Publisher, topic string, ttl time.Duration, logger zerolog.Logger) *KVRepository[T] {
	return &KVRepository[T]{
		kv:        kv,
		publisher: publisher,
		topic:     topic,
		ttl:       ttl,
		logger:    logger.With().Str("component", "kv_repository").Str("topic", topic).Logger(),
	}
}

func (r *KVRepository[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	raw, err := r.kv.Get(ctx, r.key(id))
	if err != nil {
		return item, err
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("decode %s: %w", r.key(id), err)
	}
	return item, nil
}

func (r *KVRepository[T]) List(ctx context.Context) ([]T, error) {
	keys, err := r.kv.Keys(ctx, r.topic+":")
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(keys))
	for _, key := range keys {
		raw, err := r.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}

		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("skipping undecodable entry")
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *KVRepository[T]) Put(ctx context.Context, id string, item T) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key(id), err)
	}
	if err := r.kv.Set(ctx, r.key(id), payload, r.ttl); err != nil {
		return err
	}

	r.announce(ctx, id, store.ActionPut)
	return nil
}

func (r *KVRepository[T]) Delete(ctx context.Context, id string) error {
	if _, err := r.kv.Get(ctx, r.key(id)); err != nil {
		return err
	}
	if err := r.kv.Delete(ctx, r.key(id)); err != nil {
		return err
	}

	r.announce(ctx, id, store.ActionDelete)
	return nil
}

func (r *KVRepository[T]) announce(ctx context.Context, id, action string) {
	if r.publisher == nil {
		return
	}
	event := store.Event{Topic: r.topic, Key: id, Action: action}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Warn().Err(err).Str("id", id).Str("action", action).Msg("failed to relay change event")
	}
}

func (r *KVRepository[T]) key(id string) string {
	return r.topic + ":" + id
}
