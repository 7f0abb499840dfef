package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisFeedChannel carries feed payloads between instances so a user
// connected to another node still receives their activity.
const redisFeedChannel = "feed_events"

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// instanceID tags outgoing Redis payloads so this instance can skip its
	// own publishes when they come back on the shared channel.
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Feed client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						// Sole owner of the close. A repeated unregister for
						// the same client falls through the lookup above.
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Feed client fully unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendActivity delivers a committed activity entry to every device the
// owning user has connected, here and on other instances via Redis.
func (h *Hub) SendActivity(entry *entity.ActivityEntry) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "activity",
		"data": entry,
	})
	if err != nil {
		return
	}

	h.deliver(h.clientsFor(entry.UserId), data)
	h.publishToRedis(entry.UserId.String(), data)
}

// Broadcast pushes a system message to every connected client.
func (h *Hub) Broadcast(message map[string]interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "system",
		"data": message,
	})
	if err != nil {
		return
	}

	h.deliver(h.allClients(), data)
	h.publishToRedis("*", data)
}

// deliver pushes data to each client without blocking. A client whose buffer
// is full gets handed to the unregister loop, which owns closing Send;
// closing here as well would close the channel twice.
func (h *Hub) deliver(clients []*Client, data []byte) {
	var dead []*Client
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			dead = append(dead, client)
		}
	}
	for _, client := range dead {
		h.logger.Warn("Hub", "Client buffer full, dropping feed connection", map[string]interface{}{"user_id": client.UserID})
		h.unregister <- client
	}
}

// clientsFor snapshots the user's device list so delivery can proceed without
// holding the lock while the unregister loop mutates the map.
func (h *Hub) clientsFor(userID uuid.UUID) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.clients[userID]
	out := make([]*Client, len(clients))
	copy(out, clients)
	return out
}

func (h *Hub) allClients() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*Client
	for _, clients := range h.clients {
		out = append(out, clients...)
	}
	return out
}

func (h *Hub) publishToRedis(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"origin":         h.instanceID,
		"target_user_id": target,
		"message":        json.RawMessage(data),
	})
	h.rdb.Publish(context.Background(), redisFeedChannel, payload)
}

// subscribeToRedis relays feed payloads published by other instances to any
// matching local clients.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisFeedChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.handleRedisPayload([]byte(msg.Payload))
	}
}

// handleRedisPayload filters one payload from the shared channel. Payloads
// this instance published are skipped; their local delivery already happened
// before the publish, and relaying them again would hand every connected
// client a duplicate.
func (h *Hub) handleRedisPayload(raw []byte) {
	var payload struct {
		Origin       string          `json:"origin"`
		TargetUserID string          `json:"target_user_id"`
		Message      json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("Redis msg parse error: %v", err)
		return
	}
	if payload.Origin == h.instanceID {
		return
	}

	if payload.TargetUserID == "*" {
		h.deliver(h.allClients(), payload.Message)
		return
	}

	uid, err := uuid.Parse(payload.TargetUserID)
	if err != nil {
		return
	}
	h.deliver(h.clientsFor(uid), payload.Message)
}
