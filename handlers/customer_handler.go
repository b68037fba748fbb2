package handlers

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skyweb/crmserver/database"
	"github.com/skyweb/crmserver/models"
	"github.com/skyweb/crmserver/stats"
	"github.com/skyweb/crmserver/websocket"
)

// GetCustomers devuelve los clientes, los más recientes primero. Con
// ?q= hace búsqueda por subcadena en nombre, teléfono, IP, dirección
// y región.
func GetCustomers(c *gin.Context) {
	query := c.Query("q")

	customers, err := database.SearchCustomers(c.Request.Context(), query)
	if err != nil {
		log.Printf("GetCustomers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error obteniendo clientes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": customers,
		"total": len(customers),
	})
}

// CreateCustomer da de alta un cliente desde el formulario manual.
func CreateCustomer(c *gin.Context) {
	var in models.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.Printf("CreateCustomer: datos inválidos: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos incompletos: " + err.Error()})
		return
	}

	customer, err := database.InsertCustomer(c.Request.Context(), in)
	if err != nil {
		log.Printf("CreateCustomer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al agregar cliente: " + err.Error()})
		return
	}

	if msg, err := websocket.NewCustomerCreated(customer); err == nil {
		WebSocketHub.BroadcastRaw(msg)
	}
	refreshStats(c.Request.Context())

	log.Printf("Cliente registrado: %s (%s)", customer.NombreCliente, customer.ID)
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer actualiza un cliente existente.
func UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de cliente inválido"})
		return
	}

	var in models.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.Printf("UpdateCustomer: datos inválidos: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos incompletos: " + err.Error()})
		return
	}

	if err := database.UpdateCustomer(c.Request.Context(), id, in); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
			return
		}
		log.Printf("UpdateCustomer %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar cliente: " + err.Error()})
		return
	}

	if customer, err := database.GetCustomerByID(c.Request.Context(), id); err == nil {
		if msg, err := websocket.NewCustomerUpdated(customer); err == nil {
			WebSocketHub.BroadcastRaw(msg)
		}
	}
	refreshStats(c.Request.Context())

	log.Printf("Cliente actualizado: %s", id)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// GetStats devuelve los contadores por estado de pago. La lectura
// también alimenta el monitor: así la alerta de vencidos aparece al
// cargar el panel, no solo tras una mutación.
func GetStats(c *gin.Context) {
	customers, err := listCustomers(c.Request.Context())
	if err != nil {
		log.Printf("GetStats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error obteniendo clientes: " + err.Error()})
		return
	}

	agg := stats.Compute(customers)
	AlertMonitor.Update(agg.Vencidos)
	c.JSON(http.StatusOK, agg)
}

// ExportCustomers descarga el listado actual en CSV.
func ExportCustomers(c *gin.Context) {
	customers, err := database.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("ExportCustomers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error obteniendo clientes: " + err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="clientes.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"Nombre del Cliente", "Teléfono", "Dirección", "Ubicación/Región",
		"Tipo de Instalación", "IP Asignada", "Megas Contratados",
		"Fecha de Instalación", "Método de Pago", "Folio Fibra/Migración",
		"Estado de Pago", "Notas",
	})
	for _, cust := range customers {
		notas := ""
		if cust.Notas != nil {
			notas = *cust.Notas
		}
		_ = w.Write([]string{
			cust.NombreCliente, cust.Telefono, cust.Direccion, cust.UbicacionRegion,
			cust.TipoInstalacion, cust.IPAsignada, strconv.Itoa(cust.MegasContratados),
			cust.FechaInstalacion, cust.MetodoPago, cust.FolioFibraMigracion,
			cust.EstadoPago, notas,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("ExportCustomers: escribiendo CSV: %v", err)
	}
}
