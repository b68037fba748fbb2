package reminders

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitorFiresAfterDelay(t *testing.T) {
	var fired atomic.Int32
	m := NewMonitor(20*time.Millisecond, func(count int) {
		fired.Add(1)
		assert.Equal(t, 3, count)
	})

	m.Update(3)
	assert.False(t, m.Visible())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, m.Visible())
	assert.Equal(t, int32(1), fired.Load())
}

// 0→1→0→1 dentro de la ventana dispara como mucho una vez, con el
// estado final, no dos.
func TestMonitorDebounce(t *testing.T) {
	var fired atomic.Int32
	m := NewMonitor(40*time.Millisecond, func(count int) {
		fired.Add(1)
	})

	m.Update(1)
	time.Sleep(10 * time.Millisecond)
	m.Update(0)
	time.Sleep(10 * time.Millisecond)
	m.Update(1)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.True(t, m.Visible())
}

func TestMonitorZeroCancelsPending(t *testing.T) {
	var fired atomic.Int32
	m := NewMonitor(20*time.Millisecond, func(count int) { fired.Add(1) })

	m.Update(2)
	m.Update(0)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.False(t, m.Visible())
}

func TestMonitorDismissAndReappear(t *testing.T) {
	var fired atomic.Int32
	m := NewMonitor(10*time.Millisecond, func(count int) { fired.Add(1) })

	m.Update(1)
	time.Sleep(40 * time.Millisecond)
	assert.True(t, m.Visible())

	m.Dismiss()
	assert.False(t, m.Visible())

	// la condición sigue: puede volver a aparecer
	m.Update(1)
	time.Sleep(40 * time.Millisecond)
	assert.True(t, m.Visible())
	assert.Equal(t, int32(2), fired.Load())
}

// Un Dismiss concurrente no puede colarse entre la decisión de mostrar
// y el aviso: espera a que onShow termine.
func TestMonitorDismissWaitsForShow(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	m := NewMonitor(time.Millisecond, func(count int) {
		close(entered)
		<-release
	})

	m.Update(2)
	<-entered

	dismissed := make(chan struct{})
	go func() {
		m.Dismiss()
		close(dismissed)
	}()

	select {
	case <-dismissed:
		t.Fatal("Dismiss terminó con el aviso todavía en curso")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-dismissed
	assert.False(t, m.Visible())
}

func TestMonitorCurrent(t *testing.T) {
	m := NewMonitor(5*time.Millisecond, nil)

	count, visible := m.Current()
	assert.Equal(t, 0, count)
	assert.False(t, visible)

	m.Update(4)
	time.Sleep(30 * time.Millisecond)
	count, visible = m.Current()
	assert.Equal(t, 4, count)
	assert.True(t, visible)

	m.Dismiss()
	_, visible = m.Current()
	assert.False(t, visible)
}

func TestMonitorSameCountDoesNotRestartTimer(t *testing.T) {
	var fired atomic.Int32
	m := NewMonitor(30*time.Millisecond, func(count int) { fired.Add(1) })

	m.Update(2)
	time.Sleep(15 * time.Millisecond)
	// mismo conteo: el temporizador en marcha no se reinicia
	m.Update(2)
	time.Sleep(25 * time.Millisecond)

	assert.Equal(t, int32(1), fired.Load())
}
