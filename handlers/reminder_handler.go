package handlers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skyweb/crmserver/database"
)

// handleFunctionCORS pone los encabezados CORS abiertos que espera el
// frontend para el endpoint de función.
func handleFunctionCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Client-Info, Apikey")
}

// checkFunctionBearer valida la credencial del endpoint de función.
// Se compara contra FUNCTIONS_API_KEY; sin esa variable solo se exige
// que venga un bearer.
func checkFunctionBearer(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.Replace(authHeader, "Bearer ", "", 1))
	if token == "" {
		return false
	}
	if key := os.Getenv("FUNCTIONS_API_KEY"); key != "" {
		return token == key
	}
	return true
}

// SendPaymentReminders genera un recordatorio de WhatsApp por cada
// cliente con pago vencido y responde con el resumen. La petición no
// lleva cuerpo.
func SendPaymentReminders(c *gin.Context) {
	handleFunctionCORS(c)

	if c.Request.Method == http.MethodOptions {
		// preflight: 200 sin cuerpo
		c.Status(http.StatusOK)
		return
	}

	if !checkFunctionBearer(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "se requiere autorización"})
		return
	}

	summary, err := Dispatcher.SendReminders(c.Request.Context())
	if err != nil {
		log.Printf("SendPaymentReminders: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Con el despacho hecho, la alerta del panel se retira.
	AlertMonitor.Dismiss()

	log.Printf("SendPaymentReminders: %s", summary.Message)
	c.JSON(http.StatusOK, summary)
}

// GetCustomerReminders devuelve el historial de recordatorios de un
// cliente para la vista de detalle del panel.
func GetCustomerReminders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de cliente inválido"})
		return
	}

	reminders, err := database.GetRemindersByCustomer(c.Request.Context(), id)
	if err != nil {
		log.Printf("GetCustomerReminders %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error obteniendo recordatorios: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": reminders,
		"total": len(reminders),
	})
}
