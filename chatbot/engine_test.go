package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyweb/crmserver/models"
)

func newTestEngine() *Engine {
	return NewEngine(Config{BotName: "test", TypingDelay: 0})
}

func TestSessionStartsWithGreeting(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	require.Len(t, s.Transcript, 1)
	assert.Equal(t, models.SenderBot, s.Transcript[0].Sender)
	assert.Equal(t, FlowIdle, s.Flow)

	// misma sesión al pedirla de nuevo
	assert.Same(t, s, e.Session("s1"))
}

func TestUnrecognizedInputStaysIdle(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	reply, completed := e.Advance(s, "hola qué tal")
	assert.Nil(t, completed)
	assert.Contains(t, reply, "No entiendo tu solicitud")
	assert.Equal(t, FlowIdle, s.Flow)
	assert.Empty(t, s.Partial)
}

func TestFullRegistrationFlow(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	reply, completed := e.Advance(s, "quiero registrar un nuevo cliente")
	require.Nil(t, completed)
	assert.Equal(t, registrationSteps[0].Question, reply)
	assert.Equal(t, FlowRegistro, s.Flow)

	answers := []string{
		"Juan Pérez",
		"555-123-4567",
		"Calle Hidalgo 42",
		"Fibra",
		"Zona Centro",
		"192.168.1.50",
		"100 megas",
		"05/03/2024",
		"Efectivo",
		"F-00123",
	}
	require.Len(t, answers, NumSteps())

	for i, answer := range answers {
		reply, completed = e.Advance(s, answer)
		if i < len(answers)-1 {
			require.Nil(t, completed, "paso %d no debía completar", i)
			assert.Equal(t, registrationSteps[i+1].Question, reply)
		}
	}

	require.NotNil(t, completed)
	assert.Contains(t, reply, "registrado al cliente exitosamente")

	want := map[string]string{
		"nombre_cliente":        "Juan Pérez",
		"telefono":              "555-123-4567",
		"direccion":             "Calle Hidalgo 42",
		"tipo_instalacion":      "Fibra",
		"ubicacion_region":      "Zona Centro",
		"ip_asignada":           "192.168.1.50",
		"megas_contratados":     "100",
		"fecha_instalacion":     "2024-03-05",
		"metodo_pago":           "Efectivo",
		"folio_fibra_migracion": "F-00123",
		"estado_pago":           models.EstadoPendiente,
		"referencia_domicilio":  "",
		"notas":                 "",
	}
	assert.Equal(t, want, completed)

	// la sesión queda en reposo y sin datos parciales
	assert.Equal(t, FlowIdle, s.Flow)
	assert.Equal(t, 0, s.Step)
	assert.Empty(t, s.Partial)
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	reply, _ := e.Advance(s, "REGISTRAR cliente por favor")
	assert.Equal(t, registrationSteps[0].Question, reply)
	assert.Equal(t, FlowRegistro, s.Flow)
}

func TestPaymentFlowNeverMutates(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	reply, completed := e.Advance(s, "quiero marcar pago")
	require.Nil(t, completed)
	assert.Contains(t, reply, "nombre del cliente")
	assert.Equal(t, FlowPago, s.Flow)

	reply, completed = e.Advance(s, "Juan Pérez")
	require.Nil(t, completed)
	assert.Contains(t, reply, "panel principal")
	assert.Contains(t, reply, "Juan Pérez")
	assert.Equal(t, FlowIdle, s.Flow)
}

func TestEmptyAnswerRepromptsSameStep(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	e.Advance(s, "registrar nuevo cliente")
	reply, completed := e.Advance(s, "   ")

	require.Nil(t, completed)
	assert.True(t, strings.HasSuffix(reply, registrationSteps[0].Question))
	assert.Equal(t, 0, s.Step)
	assert.Empty(t, s.Partial)
}

func TestNonNumericMegasReprompts(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	e.Advance(s, "registrar nuevo cliente")
	answers := []string{"Juan", "555", "Calle 1", "Fibra", "Centro", "10.0.0.1"}
	for _, a := range answers {
		e.Advance(s, a)
	}
	// estamos en megas_contratados
	require.Equal(t, "megas_contratados", registrationSteps[s.Step].Field)

	reply, completed := e.Advance(s, "no sé")
	require.Nil(t, completed)
	assert.True(t, strings.HasSuffix(reply, registrationSteps[s.Step].Question))
	_, stored := s.Partial["megas_contratados"]
	assert.False(t, stored)

	// con un número válido sí avanza
	reply, _ = e.Advance(s, "200")
	assert.Equal(t, "200", s.Partial["megas_contratados"])
	assert.Equal(t, registrationSteps[s.Step].Question, reply)
}

func TestTranscriptRecordsBothSides(t *testing.T) {
	e := newTestEngine()
	s := e.Session("s1")

	e.Advance(s, "hola")
	msgs := s.Messages()

	// saludo + turno del usuario + respuesta
	require.Len(t, msgs, 3)
	assert.Equal(t, models.SenderUser, msgs[1].Sender)
	assert.Equal(t, "hola", msgs[1].Text)
	assert.Equal(t, models.SenderBot, msgs[2].Sender)
}
