package models

import (
	"time"

	"github.com/google/uuid"
)

// Estados de pago permitidos. Son parte del contrato con el frontend
// y con la base de datos: se guardan y se devuelven tal cual.
const (
	EstadoPagado    = "Pagado"
	EstadoPendiente = "Pendiente"
	EstadoVencido   = "Vencido"
)

// Tipos de instalación.
const (
	InstalacionFibra  = "Fibra"
	InstalacionAntena = "Antena"
)

// Métodos de pago.
const (
	PagoEfectivo = "Efectivo"
	PagoTarjeta  = "Tarjeta"
)

// Customer representa un cliente del servicio de internet.
type Customer struct {
	ID                  uuid.UUID `json:"id"`
	NombreCliente       string    `json:"nombre_cliente"`
	Email               string    `json:"email,omitempty"`
	Telefono            string    `json:"telefono"`
	Direccion           string    `json:"direccion"`
	UbicacionRegion     string    `json:"ubicacion_region"`
	ReferenciaDomicilio string    `json:"referencia_domicilio"`
	ReferenciaFotoURL   *string   `json:"referencia_foto_url,omitempty"`
	FolioFotoURL        *string   `json:"folio_foto_url,omitempty"`
	TipoInstalacion     string    `json:"tipo_instalacion"` // "Fibra" | "Antena"
	IPAsignada          string    `json:"ip_asignada"`
	MegasContratados    int       `json:"megas_contratados"`
	// Fecha en formato YYYY-MM-DD, sin zona horaria: se interpreta literal.
	FechaInstalacion    string    `json:"fecha_instalacion"`
	MetodoPago          string    `json:"metodo_pago"` // "Efectivo" | "Tarjeta"
	FolioFibraMigracion string    `json:"folio_fibra_migracion"`
	Notas               *string   `json:"notas,omitempty"`
	EstadoPago          string    `json:"estado_pago"` // "Pagado" | "Pendiente" | "Vencido"
	FechaUltimoPago     *string   `json:"fecha_ultimo_pago,omitempty"`
	FechaVencimiento    *string   `json:"fecha_vencimiento,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CustomerInput son los campos que acepta el alta/edición manual.
// El binding de gin valida los campos obligatorios del formulario.
type CustomerInput struct {
	NombreCliente       string  `json:"nombre_cliente" binding:"required"`
	Email               string  `json:"email"`
	Telefono            string  `json:"telefono" binding:"required"`
	Direccion           string  `json:"direccion" binding:"required"`
	UbicacionRegion     string  `json:"ubicacion_region" binding:"required"`
	ReferenciaDomicilio string  `json:"referencia_domicilio"`
	ReferenciaFotoURL   *string `json:"referencia_foto_url"`
	FolioFotoURL        *string `json:"folio_foto_url"`
	TipoInstalacion     string  `json:"tipo_instalacion" binding:"required"`
	IPAsignada          string  `json:"ip_asignada" binding:"required"`
	MegasContratados    int     `json:"megas_contratados" binding:"required"`
	FechaInstalacion    string  `json:"fecha_instalacion" binding:"required"`
	MetodoPago          string  `json:"metodo_pago" binding:"required"`
	FolioFibraMigracion string  `json:"folio_fibra_migracion"`
	Notas               *string `json:"notas"`
	EstadoPago          string  `json:"estado_pago"`
	FechaUltimoPago     *string `json:"fecha_ultimo_pago"`
	FechaVencimiento    *string `json:"fecha_vencimiento"`
}

// PaymentReminder es el registro de un recordatorio de pago generado.
// Se crea únicamente como consecuencia de un envío exitoso.
type PaymentReminder struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	ReminderDate time.Time `json:"reminder_date"`
	Sent         bool      `json:"sent"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}
