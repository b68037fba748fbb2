package reminders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyweb/crmserver/database"
	"github.com/skyweb/crmserver/models"
)

type fakeStore struct {
	overdue    []models.Customer
	overdueErr error

	inserted  []database.ReminderInsert
	insertErr error
	inserts   int
}

func (f *fakeStore) GetOverdueCustomers(ctx context.Context) ([]models.Customer, error) {
	return f.overdue, f.overdueErr
}

func (f *fakeStore) InsertReminders(ctx context.Context, rs []database.ReminderInsert) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, rs...)
	return nil
}

func overdueCustomer(name, phone string) models.Customer {
	return models.Customer{
		ID:               uuid.New(),
		NombreCliente:    name,
		Telefono:         phone,
		MegasContratados: 50,
		IPAsignada:       "10.0.0.1",
		EstadoPago:       models.EstadoVencido,
	}
}

func TestSendRemindersFanOutIsolation(t *testing.T) {
	store := &fakeStore{overdue: []models.Customer{
		overdueCustomer("Ana", "555-111-1111"),
		overdueCustomer("Beto", "sin número"), // teléfono inservible
		overdueCustomer("Carla", "555-333-3333"),
	}}
	d := NewDispatcher(store)

	summary, err := d.SendReminders(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "Recordatorios preparados para 2 de 3 clientes", summary.Message)
	require.Len(t, summary.Details, 3)

	// el fallo queda capturado en su intento, no aborta a los demás
	assert.True(t, summary.Details[0].Success)
	assert.False(t, summary.Details[1].Success)
	assert.NotEmpty(t, summary.Details[1].Error)
	assert.True(t, summary.Details[2].Success)

	// se registran exactamente los recordatorios exitosos
	require.Len(t, store.inserted, 2)
	for _, r := range store.inserted {
		assert.True(t, r.Sent)
		assert.Contains(t, r.Message, "Recordatorio enviado vía WhatsApp al")
	}
}

func TestSendRemindersZeroOverdueShortCircuits(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store)

	summary, err := d.SendReminders(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, "No hay clientes con pagos vencidos", summary.Message)
	assert.Zero(t, store.inserts, "no debe tocar el store sin vencidos")
}

func TestSendRemindersInsertFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{
		overdue:   []models.Customer{overdueCustomer("Ana", "5551111111")},
		insertErr: errors.New("tabla llena"),
	}
	d := NewDispatcher(store)

	summary, err := d.SendReminders(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.Count)
}

func TestSendRemindersStoreFailurePropagates(t *testing.T) {
	store := &fakeStore{overdueErr: errors.New("sin conexión")}
	d := NewDispatcher(store)

	_, err := d.SendReminders(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sin conexión")
}
