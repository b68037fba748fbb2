package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/skyweb/crmserver/middleware"
	websocketpkg "github.com/skyweb/crmserver/websocket"
)

// wsUpgrader pasa la conexión HTTP a WebSocket con verificación de Origin.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// conexiones locales sin Origin
		host := r.Host
		return strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:")
	}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" && origin == frontendURL {
		return true
	}
	if additional := os.Getenv("ADDITIONAL_ALLOWED_ORIGINS"); additional != "" {
		for _, u := range strings.Split(additional, ",") {
			if strings.TrimSpace(u) == origin {
				return true
			}
		}
	}
	return strings.HasPrefix(origin, "http://localhost:")
}

// consoleCommand es lo que el panel puede mandar por el WebSocket.
type consoleCommand struct {
	Type string `json:"type"`
}

// ServeWS conecta a un usuario del panel al hub de eventos. El token
// JWT llega por query (?token=) porque los navegadores no mandan
// encabezados en el handshake de WebSocket.
func ServeWS(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "se requiere autorización"})
		return
	}
	claims, err := middleware.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token inválido o vencido"})
		return
	}
	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token inválido"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ServeWS: upgrade fallido: %v", err)
		return
	}

	client := websocketpkg.NewClient(WebSocketHub, conn, adminID)
	WebSocketHub.Register <- client

	go client.WritePump()
	go client.ReadPump(handleConsoleMessage)

	// Si la alerta de vencidos ya está mostrada, la conexión recién
	// llegada también la recibe.
	if count, visible := AlertMonitor.Current(); visible {
		if msg, err := websocketpkg.PaymentAlertMessage(count); err == nil {
			if err := client.SendJSON(msg); err != nil {
				log.Printf("ServeWS: reenviando alerta: %v", err)
			}
		}
	}

	log.Printf("ServeWS: panel conectado (admin %s)", adminID)
}

// handleConsoleMessage procesa los comandos que manda el panel.
func handleConsoleMessage(client *websocketpkg.Client, raw []byte) {
	var cmd consoleCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		client.SendError("bad_message", "mensaje no reconocido")
		return
	}

	switch cmd.Type {
	case "dismiss_alert":
		AlertMonitor.Dismiss()
		log.Printf("Alerta de vencidos descartada por %s", client.AdminID)
	default:
		client.SendError("unknown_command", "comando no reconocido: "+cmd.Type)
	}
}
