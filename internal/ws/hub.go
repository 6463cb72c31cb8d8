package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/goroutine"
	"github.com/vmhub/videomakers-backend/internal/logger"
	"github.com/vmhub/videomakers-backend/internal/models"
)

// Hub gerencia todas as conexões WebSocket, indexadas por usuário.
// A persistência de notificações fica no serviço; o hub só entrega.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
}

type envelope struct {
	userID  uuid.UUID
	payload []byte
}

// NewHub cria o hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 32),
	}
}

// Run roda o laço principal do hub.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.userID, msg.payload)
		}
	}
}

// Register adiciona um cliente.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister remove um cliente.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Push entrega uma notificação persistida ao usuário conectado.
// O envelope segue o contrato da API WebSocket: "type" é o evento,
// "data" a carga.
func (h *Hub) Push(userID uuid.UUID, notification *models.Notification) {
	h.sendEvent(userID, notification.Evento, notification)
}

// BroadcastMessage entrega uma mensagem de chat aos participantes.
func (h *Hub) BroadcastMessage(userIDs []uuid.UUID, message *models.Message) {
	for _, userID := range userIDs {
		h.sendEvent(userID, models.NotificationNewMessage, message)
	}
}

func (h *Hub) sendEvent(userID uuid.UUID, event string, data any) {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("event", event).Error("ws: não foi possível serializar o envelope")
		return
	}
	h.broadcast <- envelope{userID: userID, payload: raw}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) send(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// Cliente com buffer cheio é desconectado fora do laço.
			c := client
			goroutine.SafeGo(func() {
				c.Close()
			})
		}
	}
}
