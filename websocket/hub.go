package websocket

import (
	"encoding/json"
	"log"
)

// Hub mantiene las conexiones WebSocket del panel y reparte los
// eventos (altas, cambios de estado, contadores, alertas).
type Hub struct {
	// Conexiones registradas
	clients map[*Client]bool

	// Mensajes salientes hacia todas las conexiones
	broadcast chan []byte

	// Registro de conexión
	Register chan *Client

	// Baja de conexión
	Unregister chan *Client
}

// NewHub crea un nuevo Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run arranca el ciclo del Hub.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Printf("Panel conectado. Conexiones: %d", len(h.clients))
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Panel desconectado. Conexiones: %d", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Broadcast envía un mensaje a todas las conexiones del panel.
func (h *Hub) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error serializando mensaje de WebSocket: %v", err)
		return
	}
	h.broadcast <- data
}

// BroadcastRaw envía bytes ya serializados.
func (h *Hub) BroadcastRaw(data []byte) {
	h.broadcast <- data
}
