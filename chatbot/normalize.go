package chatbot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotANumber indica que una respuesta numérica no contiene ningún
// dígito utilizable. El motor reacciona volviendo a preguntar; nunca
// se guarda un centinela tipo "NaN".
var ErrNotANumber = errors.New("la respuesta no es un número")

// NormalizeField convierte la respuesta cruda del usuario al valor que
// se guarda para el campo dado. Es pura: no toca la sesión ni la base.
func NormalizeField(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch field {
	case "megas_contratados":
		return normalizeMegas(raw)
	case "fecha_instalacion":
		return normalizeDate(raw), nil
	default:
		return raw, nil
	}
}

// normalizeMegas toma el entero inicial del texto ("100 megas" → "100").
func normalizeMegas(raw string) (string, error) {
	i := 0
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		i++
	}
	start := i
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i == start {
		return "", fmt.Errorf("normalizeMegas: %w", ErrNotANumber)
	}
	if raw[0] == '+' {
		return raw[1:i], nil
	}
	return raw[:i], nil
}

// normalizeDate convierte dd/mm/aaaa → aaaa-mm-dd con ceros a la
// izquierda. Si el texto no se parte en exactamente tres pedazos lo
// deja pasar tal cual: el guion es permisivo, no valida fechas.
func normalizeDate(raw string) string {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return raw
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
