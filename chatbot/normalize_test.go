package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dd/mm/aaaa", "05/03/2024", "2024-03-05"},
		{"sin ceros", "5/3/2024", "2024-03-05"},
		{"texto libre pasa igual", "abc", "abc"},
		{"dos partes pasa igual", "05/2024", "05/2024"},
		{"cuatro partes pasa igual", "1/2/3/4", "1/2/3/4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeField("fecha_instalacion", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeMegas(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"entero", "100", "100", false},
		{"entero con texto", "100 megas", "100", false},
		{"con espacios", "  50  ", "50", false},
		{"con signo", "+20", "20", false},
		{"sin dígitos", "abc", "", true},
		{"vacío", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeField("megas_contratados", tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotANumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdentity(t *testing.T) {
	got, err := NormalizeField("nombre_cliente", "  Juan Pérez  ")
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", got)
}
