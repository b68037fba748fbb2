package chatbot

import "github.com/skyweb/crmserver/models"

// Step es un paso del guion de alta de clientes: el campo que llena,
// la pregunta que hace y, si aplica, las opciones que se mencionan en
// la pregunta. Las opciones son informativas: no se valida contra ellas.
type Step struct {
	Field    string
	Question string
	Options  []string
}

// registrationSteps es el guion fijo de alta. El orden importa: el
// cursor de la sesión indexa esta tabla.
var registrationSteps = []Step{
	{Field: "nombre_cliente", Question: "Perfecto, vamos a registrar un nuevo cliente. ¿Cuál es el nombre completo?"},
	{Field: "telefono", Question: "¿Cuál es su número de teléfono?"},
	{Field: "direccion", Question: "¿Cuál es su dirección completa?"},
	{Field: "tipo_instalacion", Question: "¿Qué tipo de instalación requiere? (Fibra o Antena)", Options: []string{models.InstalacionFibra, models.InstalacionAntena}},
	{Field: "ubicacion_region", Question: "¿En qué ubicación o región se encuentra?"},
	{Field: "ip_asignada", Question: "¿Cuál es la IP que se le asignará?"},
	{Field: "megas_contratados", Question: "¿Cuántos MB contrató?"},
	{Field: "fecha_instalacion", Question: "¿Cuál es la fecha de instalación? (dd/mm/aaaa)"},
	{Field: "metodo_pago", Question: "¿Cuál es su método de pago preferido? (Efectivo o Tarjeta)", Options: []string{models.PagoEfectivo, models.PagoTarjeta}},
	{Field: "folio_fibra_migracion", Question: "¿Cuál es el folio de fibra o migración?"},
}

// NumSteps expone el largo del guion (para los tests del flujo completo).
func NumSteps() int { return len(registrationSteps) }
