package reminders

import (
	"log"
	"sync"
	"time"
)

// DefaultAlertDelay es la espera antes de mostrar la alerta de pagos
// vencidos, para no parpadear mientras los contadores se asientan.
const DefaultAlertDelay = 2 * time.Second

// Monitor controla la alerta de pagos vencidos del panel. La alerta se
// programa con un temporizador de un solo disparo protegido por un
// contador de generación: cualquier cambio del conteo o un descarte
// invalidan el disparo pendiente, así que nunca hay más de uno en vuelo.
type Monitor struct {
	mu         sync.Mutex
	delay      time.Duration
	visible    bool
	generation uint64
	timer      *time.Timer
	lastCount  int
	onShow     func(count int)
}

// NewMonitor crea el monitor. onShow se invoca cuando la alerta pasa a
// visible, con el conteo de vencidos que la disparó. Corre bajo el lock
// del monitor, así que no debe llamar de vuelta a sus métodos.
func NewMonitor(delay time.Duration, onShow func(count int)) *Monitor {
	if delay <= 0 {
		delay = DefaultAlertDelay
	}
	return &Monitor{delay: delay, onShow: onShow}
}

// Update recibe el conteo actual de vencidos cada vez que el conjunto
// de clientes cambia.
func (m *Monitor) Update(overdue int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if overdue == 0 {
		m.cancelLocked()
		m.lastCount = 0
		return
	}
	if m.visible {
		m.lastCount = overdue
		return
	}
	if m.timer != nil && overdue == m.lastCount {
		// mismo conteo y temporizador ya en marcha, no se reinicia
		return
	}

	m.cancelLocked()
	m.lastCount = overdue
	m.generation++
	gen := m.generation
	m.timer = time.AfterFunc(m.delay, func() { m.fire(gen, overdue) })
}

func (m *Monitor) fire(gen uint64, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		// un Update o Dismiss posterior invalidó este disparo
		return
	}
	m.timer = nil
	m.visible = true

	log.Printf("reminders: alerta de pagos vencidos (%d clientes)", count)
	// bajo el lock: un Dismiss concurrente espera a que el aviso
	// termine y no puede colarse entre la decisión y el envío
	if m.onShow != nil {
		m.onShow(count)
	}
}

// Dismiss oculta la alerta. Puede volver a aparecer si la condición se
// cumple de nuevo en un Update posterior.
func (m *Monitor) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
	m.cancelLocked()
}

// Visible informa si la alerta está mostrada.
func (m *Monitor) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Current devuelve el conteo vigente de vencidos y si la alerta está
// mostrada, para reponerla en conexiones que llegan tarde.
func (m *Monitor) Current() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCount, m.visible
}

// cancelLocked invalida el temporizador pendiente; requiere m.mu.
func (m *Monitor) cancelLocked() {
	m.generation++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
