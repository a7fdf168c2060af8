// Package notify pushes export lifecycle messages to websocket subscribers.
// Each plan has a room; a conversion run broadcasts its notices and its one
// final result to everyone watching that plan.
package notify

import (
	"encoding/json"
	"log/slog"
	"sync"
)

type room struct {
	planID  string
	clients map[string]*Client // clientID -> client
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*room // planID -> room
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	rm, ok := h.rooms[client.PlanID]
	if !ok {
		rm = &room{planID: client.PlanID, clients: make(map[string]*Client)}
		h.rooms[client.PlanID] = rm
	}
	rm.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(&Message{Type: TypeWelcome, PlanID: client.PlanID})

	slog.Info("export watcher joined", "user", client.UserID, "plan", client.PlanID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	rm, ok := h.rooms[client.PlanID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(rm.clients, client.ClientID)
	close(client.send)

	if len(rm.clients) == 0 {
		delete(h.rooms, client.PlanID)
	}
	h.mu.Unlock()

	slog.Info("export watcher left", "user", client.UserID, "plan", client.PlanID)
}

// Broadcast sends a typed payload to every client watching a plan. Payloads
// that fail to marshal are dropped with a log line; notifications are best
// effort.
func (h *Hub) Broadcast(planID, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal notification payload", "error", err, "type", msgType)
		return
	}
	msg := &Message{Type: msgType, PlanID: planID, Payload: data}

	h.mu.RLock()
	rm, ok := h.rooms[planID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(rm.clients))
	for _, c := range rm.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
