package reminders

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skyweb/crmserver/database"
	"github.com/skyweb/crmserver/models"
)

// Store es lo que el despachador necesita de la base de datos.
type Store interface {
	GetOverdueCustomers(ctx context.Context) ([]models.Customer, error)
	InsertReminders(ctx context.Context, reminders []database.ReminderInsert) error
}

// Result es el desenlace del intento de recordatorio de un cliente.
type Result struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Phone      string    `json:"phone"`
	Name       string    `json:"name"`
	Success    bool      `json:"success"`
	MessageID  string    `json:"messageId,omitempty"` // el enlace wa.me generado
	Error      string    `json:"error,omitempty"`
}

// Summary es la respuesta agregada de un despacho.
type Summary struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Details []Result `json:"details,omitempty"`
}

// Dispatcher genera los recordatorios de pago para los clientes con
// estado Vencido.
type Dispatcher struct {
	store Store
}

// NewDispatcher crea el despachador sobre el store dado.
func NewDispatcher(store Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// SendReminders lanza un intento por cada cliente vencido, todos en
// paralelo y aislados entre sí: el fallo de uno no aborta a los demás.
// Por cada intento exitoso se registra un PaymentReminder; si ese
// registro falla solo se anota en el log, el despacho ya se considera
// exitoso.
func (d *Dispatcher) SendReminders(ctx context.Context) (*Summary, error) {
	customers, err := d.store.GetOverdueCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("SendReminders: %w", err)
	}

	if len(customers) == 0 {
		return &Summary{
			Success: true,
			Message: "No hay clientes con pagos vencidos",
			Count:   0,
		}, nil
	}

	results := make([]Result, len(customers))
	var wg sync.WaitGroup
	for i, c := range customers {
		wg.Add(1)
		go func(i int, c models.Customer) {
			defer wg.Done()
			r := Result{CustomerID: c.ID, Phone: c.Telefono, Name: c.NombreCliente}
			link, err := WhatsAppLink(c.Telefono, c.NombreCliente, c.MegasContratados, c.IPAsignada)
			if err != nil {
				r.Error = err.Error()
				log.Printf("SendReminders: cliente %s: %v", c.ID, err)
			} else {
				r.Success = true
				r.MessageID = link
				log.Printf("SendReminders: enlace generado para %s (%s)", c.NombreCliente, c.Telefono)
			}
			results[i] = r
		}(i, c)
	}
	wg.Wait()

	inserts := make([]database.ReminderInsert, 0, len(results))
	now := time.Now()
	for _, r := range results {
		if !r.Success {
			continue
		}
		inserts = append(inserts, database.ReminderInsert{
			CustomerID:   r.CustomerID,
			ReminderDate: now,
			Sent:         true,
			Message:      "Recordatorio enviado vía WhatsApp al " + r.Phone,
		})
	}
	if len(inserts) > 0 {
		if err := d.store.InsertReminders(ctx, inserts); err != nil {
			// El registro es best-effort: no degrada el resultado.
			log.Printf("SendReminders: error registrando recordatorios: %v", err)
		}
	}

	return &Summary{
		Success: true,
		Message: fmt.Sprintf("Recordatorios preparados para %d de %d clientes", len(inserts), len(customers)),
		Count:   len(inserts),
		Details: results,
	}, nil
}
