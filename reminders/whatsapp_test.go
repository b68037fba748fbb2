package reminders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"con guiones y espacios", "555-123 4567", "5215551234567", false},
		{"ya con prefijo", "5215551234567", "5215551234567", false},
		{"con paréntesis", "(55) 5123-4567", "5215551234567", false},
		{"sin dígitos", "sin número", "", true},
		{"vacío", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cleanPhone(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("555-123-4567", "Juan Pérez", 100, "192.168.1.50")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5215551234567?text="), link)
	assert.Contains(t, link, "Juan+P%C3%A9rez")
	assert.Contains(t, link, "100+MB")
	assert.Contains(t, link, "192.168.1.50")
	// el texto va urlencodeado, sin espacios crudos
	assert.NotContains(t, link, " ")
}

func TestWhatsAppLinkNoPhone(t *testing.T) {
	_, err := WhatsAppLink("", "Juan", 100, "10.0.0.1")
	require.ErrorIs(t, err, ErrNoPhone)
}
