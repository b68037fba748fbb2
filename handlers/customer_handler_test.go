package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyweb/crmserver/models"
	"github.com/skyweb/crmserver/reminders"
	"github.com/skyweb/crmserver/stats"
)

func setupStatsRouter(t *testing.T, customers []models.Customer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	old := listCustomers
	listCustomers = func(ctx context.Context) ([]models.Customer, error) {
		return customers, nil
	}
	t.Cleanup(func() { listCustomers = old })

	r := gin.New()
	r.GET("/api/stats", GetStats)
	return r
}

// La alerta de vencidos debe armarse también al leer los contadores:
// un panel recién abierto contra datos ya vencidos la tiene que ver
// sin esperar a que alguien mute un cliente.
func TestGetStatsArmsOverdueAlert(t *testing.T) {
	r := setupStatsRouter(t, []models.Customer{
		{NombreCliente: "Ana", EstadoPago: models.EstadoVencido},
		{NombreCliente: "Luis", EstadoPago: models.EstadoVencido},
		{NombreCliente: "Marta", EstadoPago: models.EstadoPagado},
	})

	fired := make(chan int, 1)
	AlertMonitor = reminders.NewMonitor(10*time.Millisecond, func(count int) {
		fired <- count
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var agg stats.Aggregate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agg))
	assert.Equal(t, 3, agg.Total)
	assert.Equal(t, 2, agg.Vencidos)

	select {
	case count := <-fired:
		assert.Equal(t, 2, count)
	case <-time.After(time.Second):
		t.Fatal("la alerta de vencidos nunca se disparó tras la lectura")
	}
}

func TestGetStatsZeroOverdueDoesNotArmAlert(t *testing.T) {
	r := setupStatsRouter(t, []models.Customer{
		{NombreCliente: "Ana", EstadoPago: models.EstadoPagado},
		{NombreCliente: "Luis", EstadoPago: models.EstadoPendiente},
	})

	fired := make(chan int, 1)
	AlertMonitor = reminders.NewMonitor(10*time.Millisecond, func(count int) {
		fired <- count
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	select {
	case <-fired:
		t.Fatal("la alerta se disparó sin clientes vencidos")
	case <-time.After(100 * time.Millisecond):
	}
	assert.False(t, AlertMonitor.Visible())
}
