package websocket

import (
	"bytes"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second    // tiempo para escribir un mensaje
	pongWait       = 60 * time.Second    // espera máxima del PONG
	pingPeriod     = (pongWait * 9) / 10 // cada cuánto mandar PING
	maxMessageSize = 512                 // tamaño máximo del mensaje entrante
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Client representa una conexión WebSocket del panel.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // mensajes salientes

	// AdminID identifica al usuario del panel detrás de la conexión.
	AdminID uuid.UUID
}

// NewClient crea una conexión del panel.
func NewClient(hub *Hub, conn *websocket.Conn, adminID uuid.UUID) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		AdminID: adminID,
	}
}

// SendJSON envía un objeto JSON a esta conexión.
func (c *Client) SendJSON(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	c.send <- raw
	return nil
}

// SendError envía un mensaje de error a esta conexión.
func (c *Client) SendError(code, message string) {
	errorMsg, _ := NewErrorMessage(code, message)
	c.send <- errorMsg
}

// ReadPump lee mensajes del WebSocket y los pasa al handler.
func (c *Client) ReadPump(messageHandler func(client *Client, message []byte)) {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
		log.Printf("WebSocket cerrado: %s", c.AdminID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket cierre inesperado (%s): %v", c.AdminID, err)
			}
			break
		}

		// Limpiamos saltos de línea
		raw = bytes.TrimSpace(bytes.Replace(raw, newline, space, -1))

		if messageHandler != nil {
			messageHandler(c, raw)
		}
	}
}

// WritePump escribe del canal send al WebSocket y mantiene viva la
// conexión con ping/pong.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.Unregister <- c
		c.conn.Close()
		log.Printf("WritePump cerrado: %s", c.AdminID)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// el Hub cerró el canal
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// vaciamos los mensajes acumulados
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
