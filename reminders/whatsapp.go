package reminders

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// countryPrefix es el prefijo país+celular de México que espera wa.me.
const countryPrefix = "521"

// ErrNoPhone indica que al teléfono del cliente no le quedó ningún
// dígito después de limpiarlo.
var ErrNoPhone = errors.New("el cliente no tiene un teléfono utilizable")

// reminderMessage arma el texto del recordatorio de pago.
func reminderMessage(name string, megas int, ip string) string {
	return fmt.Sprintf(
		"Hola %s,\n\nLe recordamos que su pago del servicio de internet está vencido.\n\n*Detalles del servicio:*\n📶 Plan: %d MB\n🌐 IP Asignada: %s\n\nPara evitar la suspensión del servicio, favor de realizar su pago a la brevedad.\n\nGracias por su preferencia.\n\n- Skyweb",
		name, megas, ip,
	)
}

// cleanPhone deja solo los dígitos del teléfono y antepone el prefijo
// de país si todavía no lo trae.
func cleanPhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", ErrNoPhone
	}
	if !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}
	return digits, nil
}

// WhatsAppLink construye el enlace wa.me con el mensaje precargado.
// Construir el enlace no hace ninguna llamada de red: el envío real lo
// hace el operador al abrirlo.
func WhatsAppLink(phone, name string, megas int, ip string) (string, error) {
	number, err := cleanPhone(phone)
	if err != nil {
		return "", err
	}
	msg := reminderMessage(name, megas, ip)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(msg), nil
}
