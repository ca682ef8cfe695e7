package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/salestrain-api/internal/observability"
	"github.com/noah-isme/salestrain-api/internal/store"
)

const eventWriteTimeout = 5 * time.Second

// EventSubscriber hands out change-event subscriptions.
type EventSubscriber interface {
	Subscribe(topic string) (<-chan store.Event, func())
}

// EventsHandler streams store change events to websocket clients.
type EventsHandler struct {
	subscriber EventSubscriber
	logger     zerolog.Logger
}

// NewEventsHandler constructs the change-event stream handler.
func NewEventsHandler(subscriber EventSubscriber, logger zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		subscriber: subscriber,
		logger:     logger.With().Str("component", "events_handler").Logger(),
	}
}

// Register wires the websocket upgrade route.
func (h *EventsHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.handleConnection))
}

// handleConnection forwards events on the requested topic until either side goes away.
// An empty topic subscribes to every topic.
func (h *EventsHandler) handleConnection(conn *websocket.Conn) {
	topic := strings.TrimSpace(conn.Query("topic"))
	correlation, _ := conn.Locals("correlation_id").(string)
	logger := h.logger.With().Str("topic", topic).Str("correlation_id", correlation).Logger()

	events, unsubscribe := h.subscriber.Subscribe(topic)
	defer unsubscribe()

	gauge := observability.WebsocketClientsActive()
	gauge.Inc()
	defer gauge.Dec()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger.Info().Msg("event stream connected")
	defer logger.Info().Msg("event stream disconnected")

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				logger.Debug().Err(err).Msg("failed to write event")
				return
			}
		case <-closed:
			return
		}
	}
}
