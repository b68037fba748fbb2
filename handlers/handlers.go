package handlers

import (
	"context"
	"log"

	"github.com/skyweb/crmserver/chatbot"
	"github.com/skyweb/crmserver/database"
	"github.com/skyweb/crmserver/models"
	"github.com/skyweb/crmserver/reminders"
	"github.com/skyweb/crmserver/stats"
	"github.com/skyweb/crmserver/websocket"
)

// Estado compartido de los handlers: el hub del panel, el asistente,
// el monitor de alertas y el despachador de recordatorios.
var (
	WebSocketHub *websocket.Hub
	Bot          *chatbot.Engine
	AlertMonitor *reminders.Monitor
	Dispatcher   *reminders.Dispatcher
)

// listCustomers se sustituye en pruebas por un lector en memoria.
var listCustomers = database.GetCustomers

// dbStore adapta el paquete database a la interfaz del despachador.
type dbStore struct{}

func (dbStore) GetOverdueCustomers(ctx context.Context) ([]models.Customer, error) {
	return database.GetOverdueCustomers(ctx)
}

func (dbStore) InsertReminders(ctx context.Context, rs []database.ReminderInsert) error {
	return database.InsertReminders(ctx, rs)
}

// Init conecta los handlers con sus colaboradores.
func Init(hub *websocket.Hub) {
	WebSocketHub = hub
	Bot = chatbot.NewEngine(chatbot.DefaultConfig())
	AlertMonitor = reminders.NewMonitor(reminders.DefaultAlertDelay, func(count int) {
		if msg, err := websocket.PaymentAlertMessage(count); err == nil {
			hub.Broadcast(msg)
		}
	})
	Dispatcher = reminders.NewDispatcher(dbStore{})
	log.Println("Handlers inicializados")
}

// refreshStats recalcula los contadores, los difunde al panel y
// alimenta el monitor de alertas. Se llama después de cada mutación.
func refreshStats(ctx context.Context) {
	customers, err := listCustomers(ctx)
	if err != nil {
		log.Printf("refreshStats: %v", err)
		return
	}
	agg := stats.Compute(customers)

	if msg, err := websocket.NewStatsMessage(agg); err == nil {
		WebSocketHub.BroadcastRaw(msg)
	}
	AlertMonitor.Update(agg.Vencidos)
}
