package models

import (
	"time"
)

// Remitentes de los mensajes del asistente.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage es un mensaje de la transcripción de una conversación
// con el asistente. La transcripción vive en memoria, no se persiste.
type ChatMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"` // "user" | "bot"
	Timestamp time.Time `json:"timestamp"`
}

// IncomingChatMessage es lo que manda el frontend al asistente.
type IncomingChatMessage struct {
	SessionID string `json:"sessionId" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// ChatReply es la respuesta de un turno del asistente.
type ChatReply struct {
	SessionID  string      `json:"sessionId"`
	Reply      ChatMessage `json:"reply"`
	Registered *Customer   `json:"registered,omitempty"` // presente si el turno completó un alta
}
