package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/observability"
)

const (
	subscriberBufferSize = 16
	allTopics            = "*"
	seenEventWindow      = 1024
)

// Relay transports. A broker relays over exactly one of them.
const (
	transportNone  = ""
	transportRedis = "redis"
	transportNATS  = "nats"
)

// Change actions carried by events.
const (
	ActionPut    = "put"
	ActionDelete = "delete"
)

// Event announces a change to a stored entity.
type Event struct {
	ID     string    `json:"id"`
	Topic  string    `json:"topic"`
	Key    string    `json:"key"`
	Action string    `json:"action"`
	Source string    `json:"source"`
	At     time.Time `json:"at"`
}

// Publisher announces changes.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BrokerOptions configures the optional cross-node relay. When both clients are set,
// NATS carries the events and Redis is left to the key-value store.
type BrokerOptions struct {
	Redis   *redis.Client
	NATS    *nats.Conn
	Channel string
	Logger  zerolog.Logger
}

// Broker fans change events out to local subscribers and, when configured, relays them to
// other nodes over NATS or Redis pub/sub.
type Broker struct {
	mu           sync.RWMutex
	subscribers  map[string]map[chan Event]struct{}
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	transport    string
	seen         *eventWindow
	nodeID       string
	logger       zerolog.Logger
	now          func() time.Time
}

// NewBroker constructs a broker.
func NewBroker(opts BrokerOptions) *Broker {
	channel := strings.TrimSpace(opts.Channel)
	redisChannel := ""
	natsSubject := ""
	if channel != "" {
		redisChannel = channel + ":events"
		natsSubject = strings.ReplaceAll(channel, ":", ".") + ".events"
	}

	transport := transportNone
	switch {
	case opts.NATS != nil && natsSubject != "":
		transport = transportNATS
	case opts.Redis != nil && redisChannel != "":
		transport = transportRedis
	}

	return &Broker{
		subscribers:  make(map[string]map[chan Event]struct{}),
		redis:        opts.Redis,
		redisChannel: redisChannel,
		nats:         opts.NATS,
		natsSubject:  natsSubject,
		transport:    transport,
		seen:         newEventWindow(seenEventWindow),
		nodeID:       uuid.NewString(),
		logger:       opts.Logger.With().Str("component", "store_broker").Logger(),
		now:          time.Now,
	}
}

// NodeID identifies this broker instance in relayed events.
func (b *Broker) NodeID() string {
	return b.nodeID
}

// Transport names the relay in use: "nats", "redis", or "" for a single node.
func (b *Broker) Transport() string {
	return b.transport
}

// Start consumes relayed events until ctx is cancelled.
func (b *Broker) Start(ctx context.Context) {
	switch b.transport {
	case transportNATS:
		go b.consumeNATS(ctx)
	case transportRedis:
		go b.consumeRedis(ctx)
	}
}

// Subscribe registers for events on topic; an empty topic receives every event.
// The returned function unsubscribes and closes the channel. Slow subscribers miss
// events rather than block publishers.
func (b *Broker) Subscribe(topic string) (<-chan Event, func()) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = allTopics
	}

	channel := make(chan Event, subscriberBufferSize)

	b.mu.Lock()
	if _, ok := b.subscribers[topic]; !ok {
		b.subscribers[topic] = make(map[chan Event]struct{})
	}
	b.subscribers[topic][channel] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if subscribers, ok := b.subscribers[topic]; ok {
				delete(subscribers, channel)
				if len(subscribers) == 0 {
					delete(b.subscribers, topic)
				}
			}
			close(channel)
		})
	}

	return channel, cancel
}

// Publish delivers the event locally and relays it to other nodes.
func (b *Broker) Publish(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Source == "" {
		event.Source = b.nodeID
	}
	if event.At.IsZero() {
		event.At = b.now().UTC()
	}

	b.broadcast(event)
	observability.StoreEventsTotal().WithLabelValues(event.Topic, event.Action).Inc()

	return b.relay(ctx, event)
}

func (b *Broker) broadcast(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, topic := range []string{event.Topic, allTopics} {
		for ch := range b.subscribers[topic] {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

func (b *Broker) relay(ctx context.Context, event Event) error {
	if b.transport == transportNone {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if b.transport == transportNATS {
		return b.nats.Publish(b.natsSubject, payload)
	}
	return b.redis.Publish(ctx, b.redisChannel, payload).Err()
}

func (b *Broker) consumeRedis(ctx context.Context) {
	pubsub := b.redis.Subscribe(ctx, b.redisChannel)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, redis.ErrClosed) {
				return
			}
			b.logger.Error().Err(err).Msg("event redis subscription closed")
			return
		}
		b.handleRelayed([]byte(msg.Payload))
	}
}

func (b *Broker) consumeNATS(ctx context.Context) {
	sub, err := b.nats.Subscribe(b.natsSubject, func(msg *nats.Msg) {
		b.handleRelayed(msg.Data)
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to subscribe to nats events subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			b.logger.Warn().Err(err).Msg("failed to drain nats events subscription")
		}
	}()
}

func (b *Broker) handleRelayed(payload []byte) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		b.logger.Warn().Err(err).Msg("invalid relayed event payload")
		return
	}

	if event.Source == b.nodeID {
		return
	}
	if event.ID != "" && !b.seen.add(event.ID) {
		b.logger.Debug().Str("event_id", event.ID).Msg("dropping duplicate relayed event")
		return
	}

	b.broadcast(event)
}

// eventWindow remembers the most recent relayed event IDs.
type eventWindow struct {
	mu   sync.Mutex
	ids  map[string]struct{}
	ring []string
	next int
}

func newEventWindow(size int) *eventWindow {
	return &eventWindow{
		ids:  make(map[string]struct{}, size),
		ring: make([]string, size),
	}
}

// add records id and reports whether it was new. The oldest ID is forgotten once the
// window is full.
func (w *eventWindow) add(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.ids[id]; ok {
		return false
	}
	if evicted := w.ring[w.next]; evicted != "" {
		delete(w.ids, evicted)
	}
	w.ring[w.next] = id
	w.ids[id] = struct{}{}
	w.next = (w.next + 1) % len(w.ring)
	return true
}
