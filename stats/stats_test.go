package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyweb/crmserver/models"
)

func withStatus(estados ...string) []models.Customer {
	out := make([]models.Customer, len(estados))
	for i, e := range estados {
		out[i] = models.Customer{EstadoPago: e}
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		customers []models.Customer
		want      Aggregate
	}{
		{"vacío", nil, Aggregate{}},
		{
			"mezcla",
			withStatus(
				models.EstadoPagado, models.EstadoPagado,
				models.EstadoPendiente,
				models.EstadoVencido, models.EstadoVencido, models.EstadoVencido,
			),
			Aggregate{Total: 6, Pagados: 2, Pendientes: 1, Vencidos: 3},
		},
		{
			"solo vencidos",
			withStatus(models.EstadoVencido),
			Aggregate{Total: 1, Vencidos: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.customers))
		})
	}
}

// La suma de los tres estados siempre da el total.
func TestComputeCountsAddUp(t *testing.T) {
	estados := []string{models.EstadoPagado, models.EstadoPendiente, models.EstadoVencido}
	customers := make([]models.Customer, 0, 60)
	for i := 0; i < 60; i++ {
		customers = append(customers, models.Customer{EstadoPago: estados[(i*7)%3]})
	}

	agg := Compute(customers)
	assert.Equal(t, agg.Total, agg.Pagados+agg.Pendientes+agg.Vencidos)
	assert.Equal(t, 60, agg.Total)
}
