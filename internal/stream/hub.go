package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans walk events out to connected websocket clients. When a redis
// client is supplied, events are also relayed across instances through
// per-walk pub/sub channels.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	WalkID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(walkID string) *Client {
	client := &Client{
		WalkID: walkID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[walkID] == nil {
		h.clients[walkID] = map[*Client]struct{}{}
	}
	h.clients[walkID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if walkClients, ok := h.clients[client.WalkID]; ok {
		delete(walkClients, client)
		if len(walkClients) == 0 {
			delete(h.clients, client.WalkID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(walkID string, payload []byte) {
	// With redis attached, local clients are reached through the pub/sub
	// loop like everyone else; fanning out here too would deliver twice.
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(walkID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
		return
	}

	h.deliver(walkID, payload)
}

func (h *Hub) deliver(walkID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[walkID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "walk:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(walkIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(walkID string) string {
	return "walk:" + walkID + ":events"
}

func walkIDFromChannel(ch string) string {
	// walk:{id}:events
	const prefix = "walk:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
