package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyweb/crmserver/database"
	"github.com/skyweb/crmserver/models"
	"github.com/skyweb/crmserver/websocket"
)

// ChatbotMessage procesa un turno del asistente virtual. Si el turno
// completa un alta, el cliente se persiste y se notifica al panel.
func ChatbotMessage(c *gin.Context) {
	var in models.IncomingChatMessage
	if err := c.ShouldBindJSON(&in); err != nil {
		log.Printf("ChatbotMessage: datos inválidos: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := Bot.Session(in.SessionID)
	reply, completed := Bot.Advance(session, in.Content)

	resp := models.ChatReply{
		SessionID: in.SessionID,
		Reply: models.ChatMessage{
			Text:      reply,
			Sender:    models.SenderBot,
			Timestamp: time.Now(),
		},
	}

	if completed != nil {
		customer, err := database.InsertCustomer(c.Request.Context(), customerInputFromFields(completed))
		if err != nil {
			log.Printf("ChatbotMessage: error registrando cliente: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Error al agregar cliente: " + err.Error(),
				"reply": resp.Reply,
			})
			return
		}

		if msg, err := websocket.NewCustomerCreated(customer); err == nil {
			WebSocketHub.BroadcastRaw(msg)
		}
		refreshStats(c.Request.Context())

		log.Printf("ChatbotMessage: cliente registrado por el asistente: %s (%s)",
			customer.NombreCliente, customer.ID)
		resp.Registered = customer
	}

	c.JSON(http.StatusOK, resp)
}

// GetChatbotTranscript devuelve la transcripción de una sesión.
func GetChatbotTranscript(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de sesión no indicado"})
		return
	}

	session := Bot.Session(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"messages":  session.Messages(),
	})
}

// ClearChatbotSession descarta una sesión del asistente (el widget se
// cerró o el usuario quiere empezar de cero).
func ClearChatbotSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de sesión no indicado"})
		return
	}

	Bot.Clear(sessionID)
	log.Printf("ClearChatbotSession: sesión %s descartada", sessionID)
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// customerInputFromFields arma el alta a partir de los campos que
// juntó el asistente. El asistente ya normalizó los valores, así que
// los numéricos siempre parsean.
func customerInputFromFields(fields map[string]string) models.CustomerInput {
	megas, _ := strconv.Atoi(fields["megas_contratados"])
	notas := fields["notas"]
	return models.CustomerInput{
		NombreCliente:       fields["nombre_cliente"],
		Telefono:            fields["telefono"],
		Direccion:           fields["direccion"],
		UbicacionRegion:     fields["ubicacion_region"],
		ReferenciaDomicilio: fields["referencia_domicilio"],
		TipoInstalacion:     fields["tipo_instalacion"],
		IPAsignada:          fields["ip_asignada"],
		MegasContratados:    megas,
		FechaInstalacion:    fields["fecha_instalacion"],
		MetodoPago:          fields["metodo_pago"],
		FolioFibraMigracion: fields["folio_fibra_migracion"],
		Notas:               &notas,
		EstadoPago:          fields["estado_pago"],
	}
}
