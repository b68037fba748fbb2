package websocket

import (
	"encoding/json"

	"github.com/skyweb/crmserver/models"
	"github.com/skyweb/crmserver/stats"
)

// Tipos de evento que recibe el panel.
const (
	EventCustomerCreated = "customer_created"
	EventCustomerUpdated = "customer_updated"
	EventStats           = "stats"
	EventPaymentAlert    = "payment_alert"
	EventError           = "error"
)

// Message es el sobre de todos los eventos del panel.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage arma un evento con el tipo y los datos dados.
func NewMessage(messageType string, payload interface{}) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	message := Message{
		Type:    messageType,
		Payload: payloadJSON,
	}

	return json.Marshal(message)
}

// NewCustomerCreated notifica un alta de cliente.
func NewCustomerCreated(customer *models.Customer) ([]byte, error) {
	return NewMessage(EventCustomerCreated, customer)
}

// NewCustomerUpdated notifica un cambio en un cliente.
func NewCustomerUpdated(customer *models.Customer) ([]byte, error) {
	return NewMessage(EventCustomerUpdated, customer)
}

// NewStatsMessage manda los contadores de estado de pago.
func NewStatsMessage(agg stats.Aggregate) ([]byte, error) {
	return NewMessage(EventStats, agg)
}

// PaymentAlertMessage arma el sobre de la alerta de vencidos como
// valor, para difundirlo por el hub o reenviarlo a una sola conexión.
func PaymentAlertMessage(overdueCount int) (Message, error) {
	payload, err := json.Marshal(struct {
		OverdueCount int `json:"overdueCount"`
	}{OverdueCount: overdueCount})
	if err != nil {
		return Message{}, err
	}
	return Message{Type: EventPaymentAlert, Payload: payload}, nil
}

// NewErrorMessage arma un evento de error.
func NewErrorMessage(code, errorText string) ([]byte, error) {
	payload := struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}{Code: code, Error: errorText}

	return NewMessage(EventError, payload)
}
