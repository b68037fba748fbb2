// Package stats calcula los contadores de estado de pago que muestran
// las tarjetas del panel. Es un cálculo puro sobre el conjunto actual
// de clientes; no se guarda en ningún lado.
package stats

import (
	"github.com/skyweb/crmserver/models"
)

// Aggregate son los contadores derivados del conjunto de clientes.
// Para cualquier conjunto válido, Pagados+Pendientes+Vencidos == Total.
type Aggregate struct {
	Total      int `json:"total"`
	Pagados    int `json:"pagados"`
	Pendientes int `json:"pendientes"`
	Vencidos   int `json:"vencidos"`
}

// Compute cuenta los clientes por estado de pago.
func Compute(customers []models.Customer) Aggregate {
	agg := Aggregate{Total: len(customers)}
	for _, c := range customers {
		switch c.EstadoPago {
		case models.EstadoPagado:
			agg.Pagados++
		case models.EstadoPendiente:
			agg.Pendientes++
		case models.EstadoVencido:
			agg.Vencidos++
		}
	}
	return agg
}
