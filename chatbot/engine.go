package chatbot

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/skyweb/crmserver/models"
)

// Flujos de conversación.
const (
	FlowIdle     = "none"
	FlowRegistro = "registro"
	FlowPago     = "pago"
)

// Mensajes fijos del asistente.
const (
	greetingMessage = "¡Hola! Soy tu asistente virtual. Puedo ayudarte a:\n• Registrar nuevos clientes\n• Actualizar estados de pago\n• Consultar información\n\n¿En qué puedo ayudarte?"
	helpMessage     = "No entiendo tu solicitud. Puedes decir:\n• \"Registrar nuevo cliente\"\n• \"Marcar pago\"\n• \"Ayuda\""
	paymentPrompt   = "¿Cuál es el nombre del cliente para actualizar su estado de pago?"
	successMessage  = "¡Perfecto! He registrado al cliente exitosamente. El cliente ha sido agregado a la base de datos.\n\n¿Hay algo más en lo que pueda ayudarte?"
	emptyReprompt   = "Necesito ese dato para continuar. "
	numberReprompt  = "Por favor indícame un número. "
)

// Config contiene los ajustes del asistente.
type Config struct {
	BotName string `json:"botName"`
	// Pausa antes de responder (simula que el bot "escribe").
	TypingDelay time.Duration `json:"typingDelay"`
}

// DefaultConfig devuelve los ajustes por defecto del asistente.
func DefaultConfig() Config {
	return Config{
		BotName:     "Asistente Virtual ISP",
		TypingDelay: 500 * time.Millisecond,
	}
}

// Session es el estado efímero de una conversación. Vive solo en
// memoria: al completar o reiniciar un flujo, el mapa parcial y el
// cursor vuelven a cero.
type Session struct {
	ID         string
	Flow       string
	Step       int // válido solo en FlowRegistro
	Partial    map[string]string
	Transcript []models.ChatMessage

	// Serializa los turnos: un segundo mensaje espera a que el
	// anterior termine, incluida la pausa de "escribiendo".
	mu sync.Mutex
}

// Engine es el motor del asistente: enruta cada mensaje según el flujo
// actual de la sesión y mantiene el guion de alta.
type Engine struct {
	cfg Config

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewEngine crea el motor con los ajustes dados.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Session devuelve la sesión con ese ID, creándola con el saludo
// inicial si no existe.
func (e *Engine) Session(id string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.sessions[id]; ok {
		return s
	}
	s := &Session{
		ID:      id,
		Flow:    FlowIdle,
		Partial: make(map[string]string),
		Transcript: []models.ChatMessage{
			{Text: greetingMessage, Sender: models.SenderBot, Timestamp: time.Now()},
		},
	}
	e.sessions[id] = s
	log.Printf("chatbot: sesión %s creada", id)
	return s
}

// Clear elimina una sesión (p. ej. cuando el widget se cierra).
func (e *Engine) Clear(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, id)
}

// Advance procesa un turno: agrega el mensaje del usuario a la
// transcripción, avanza la máquina de estados y devuelve la respuesta
// del bot. Si el turno completó un alta, devuelve también los campos
// acumulados listos para persistir. Nunca devuelve error: toda entrada
// inesperada se contesta con un mensaje fijo.
func (e *Engine) Advance(s *Session, text string) (reply string, completed map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.Transcript = append(s.Transcript, models.ChatMessage{
		Text: text, Sender: models.SenderUser, Timestamp: now,
	})

	if e.cfg.TypingDelay > 0 {
		time.Sleep(e.cfg.TypingDelay)
	}

	switch s.Flow {
	case FlowRegistro:
		reply, completed = e.advanceRegistration(s, text)
	case FlowPago:
		reply = fmt.Sprintf(
			"Entendido. Para marcar el pago de %s, necesitarías usar el panel principal y buscar al cliente para actualizar su estado. ¿Hay algo más en lo que pueda ayudarte?",
			strings.TrimSpace(text),
		)
		s.reset()
	default:
		reply = e.routeIdle(s, text)
	}

	s.Transcript = append(s.Transcript, models.ChatMessage{
		Text: reply, Sender: models.SenderBot, Timestamp: time.Now(),
	})
	return reply, completed
}

// routeIdle clasifica el texto libre en uno de los dos comandos
// reconocidos, o contesta con la ayuda fija.
func (e *Engine) routeIdle(s *Session, text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "registrar"),
		strings.Contains(lower, "nuevo cliente"),
		strings.Contains(lower, "agregar cliente"):
		s.Flow = FlowRegistro
		s.Step = 0
		return registrationSteps[0].Question

	case strings.Contains(lower, "pago"):
		// cubre también "marcar pago"
		s.Flow = FlowPago
		return paymentPrompt

	default:
		return helpMessage
	}
}

// advanceRegistration consume la respuesta del paso actual. Una
// respuesta vacía o un número ilegible repiten la pregunta; no se
// guardan valores vacíos ni centinelas.
func (e *Engine) advanceRegistration(s *Session, text string) (string, map[string]string) {
	step := registrationSteps[s.Step]

	if strings.TrimSpace(text) == "" {
		return emptyReprompt + step.Question, nil
	}

	value, err := NormalizeField(step.Field, text)
	if err != nil {
		log.Printf("chatbot: sesión %s, campo %s: %v", s.ID, step.Field, err)
		return numberReprompt + step.Question, nil
	}
	s.Partial[step.Field] = value

	if s.Step < len(registrationSteps)-1 {
		s.Step++
		return registrationSteps[s.Step].Question, nil
	}

	// Último paso: armamos el registro completo con los valores por
	// defecto y reiniciamos la sesión.
	completed := make(map[string]string, len(s.Partial)+3)
	for k, v := range s.Partial {
		completed[k] = v
	}
	completed["estado_pago"] = models.EstadoPendiente
	if _, ok := completed["referencia_domicilio"]; !ok {
		completed["referencia_domicilio"] = ""
	}
	if _, ok := completed["notas"]; !ok {
		completed["notas"] = ""
	}

	s.reset()
	return successMessage, completed
}

// Messages devuelve una copia de la transcripción de la sesión.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.Transcript))
	copy(out, s.Transcript)
	return out
}

// reset deja la sesión en reposo; la transcripción se conserva.
func (s *Session) reset() {
	s.Flow = FlowIdle
	s.Step = 0
	s.Partial = make(map[string]string)
}
