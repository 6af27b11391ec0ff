package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans trip-progress events out to connected websocket clients, with an
// optional redis pub/sub bridge so events reach clients on other instances.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	PlanID string
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

func (h *Hub) Register(planID string) *Client {
	client := &Client{
		PlanID: planID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[planID] == nil {
		h.clients[planID] = map[*Client]struct{}{}
	}
	h.clients[planID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if planClients, ok := h.clients[client.PlanID]; ok {
		delete(planClients, client)
		if len(planClients) == 0 {
			delete(h.clients, client.PlanID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(planID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[planID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(planID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "trip:*:progress")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		planID := planIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[planID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(planID string) string {
	return "trip:" + planID + ":progress"
}

func planIDFromChannel(ch string) string {
	// trip:{plan}:progress
	const prefix = "trip:"
	const suffix = ":progress"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
