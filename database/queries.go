// internal/database/queries.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skyweb/crmserver/models"
)

const dbQueryTimeout = 5 * time.Second

const customerColumns = `
	id, nombre_cliente, email, telefono, direccion, ubicacion_region,
	referencia_domicilio, referencia_foto_url, folio_foto_url,
	tipo_instalacion, ip_asignada, megas_contratados, fecha_instalacion,
	metodo_pago, folio_fibra_migracion, notas, estado_pago,
	fecha_ultimo_pago, fecha_vencimiento, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	var c models.Customer
	var email, refFoto, folioFoto, notas, ultimoPago, vencimiento sql.NullString

	err := row.Scan(
		&c.ID, &c.NombreCliente, &email, &c.Telefono, &c.Direccion,
		&c.UbicacionRegion, &c.ReferenciaDomicilio, &refFoto, &folioFoto,
		&c.TipoInstalacion, &c.IPAsignada, &c.MegasContratados,
		&c.FechaInstalacion, &c.MetodoPago, &c.FolioFibraMigracion,
		&notas, &c.EstadoPago, &ultimoPago, &vencimiento,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		c.Email = email.String
	}
	c.ReferenciaFotoURL = nullStringToPointer(refFoto)
	c.FolioFotoURL = nullStringToPointer(folioFoto)
	c.Notas = nullStringToPointer(notas)
	c.FechaUltimoPago = nullStringToPointer(ultimoPago)
	c.FechaVencimiento = nullStringToPointer(vencimiento)
	return &c, nil
}

// ─────────────────────────── GetCustomers

// GetCustomers devuelve todos los clientes, los más recientes primero.
func GetCustomers(ctx context.Context) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	q := `SELECT ` + customerColumns + `
		FROM customers
		ORDER BY created_at DESC`
	rows, err := DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("GetCustomers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("GetCustomers: scan: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

// ─────────────────────────── GetCustomerByID

func GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	q := `SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1`
	c, err := scanCustomer(DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("GetCustomerByID: %w", err)
	}
	return c, nil
}

// ─────────────────────────── SearchCustomers

// SearchCustomers busca por subcadena (ILIKE) en nombre, teléfono, IP,
// dirección y región. Con query vacío se comporta como GetCustomers.
func SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return GetCustomers(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	q := `SELECT ` + customerColumns + `
		FROM customers
		WHERE nombre_cliente ILIKE $1
		   OR telefono ILIKE $1
		   OR ip_asignada ILIKE $1
		   OR direccion ILIKE $1
		   OR ubicacion_region ILIKE $1
		ORDER BY created_at DESC`
	rows, err := DB.QueryContext(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("SearchCustomers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("SearchCustomers: scan: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

// ─────────────────────────── InsertCustomer

// InsertCustomer da de alta un cliente y devuelve la fila guardada.
func InsertCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	if in.EstadoPago == "" {
		in.EstadoPago = models.EstadoPendiente
	}

	id := uuid.New()
	now := time.Now()
	q := `
		INSERT INTO customers (
			id, nombre_cliente, email, telefono, direccion, ubicacion_region,
			referencia_domicilio, referencia_foto_url, folio_foto_url,
			tipo_instalacion, ip_asignada, megas_contratados, fecha_instalacion,
			metodo_pago, folio_fibra_migracion, notas, estado_pago,
			fecha_ultimo_pago, fecha_vencimiento, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21
		)
		RETURNING ` + customerColumns
	row := DB.QueryRowContext(ctx, q,
		id, in.NombreCliente, in.Email, in.Telefono, in.Direccion,
		in.UbicacionRegion, in.ReferenciaDomicilio,
		pointerToNullString(in.ReferenciaFotoURL), pointerToNullString(in.FolioFotoURL),
		in.TipoInstalacion, in.IPAsignada, in.MegasContratados, in.FechaInstalacion,
		in.MetodoPago, in.FolioFibraMigracion, pointerToNullString(in.Notas),
		in.EstadoPago, pointerToNullString(in.FechaUltimoPago),
		pointerToNullString(in.FechaVencimiento), now, now,
	)

	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("InsertCustomer: %w", err)
	}
	return c, nil
}

// ─────────────────────────── UpdateCustomer

// UpdateCustomer actualiza los campos del cliente y sella updated_at.
func UpdateCustomer(ctx context.Context, id uuid.UUID, in models.CustomerInput) error {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	const q = `
		UPDATE customers SET
			nombre_cliente = $1, email = $2, telefono = $3, direccion = $4,
			ubicacion_region = $5, referencia_domicilio = $6,
			referencia_foto_url = $7, folio_foto_url = $8,
			tipo_instalacion = $9, ip_asignada = $10, megas_contratados = $11,
			fecha_instalacion = $12, metodo_pago = $13,
			folio_fibra_migracion = $14, notas = $15, estado_pago = $16,
			fecha_ultimo_pago = $17, fecha_vencimiento = $18,
			updated_at = $19
		WHERE id = $20`
	res, err := DB.ExecContext(ctx, q,
		in.NombreCliente, in.Email, in.Telefono, in.Direccion,
		in.UbicacionRegion, in.ReferenciaDomicilio,
		pointerToNullString(in.ReferenciaFotoURL), pointerToNullString(in.FolioFotoURL),
		in.TipoInstalacion, in.IPAsignada, in.MegasContratados,
		in.FechaInstalacion, in.MetodoPago, in.FolioFibraMigracion,
		pointerToNullString(in.Notas), in.EstadoPago,
		pointerToNullString(in.FechaUltimoPago), pointerToNullString(in.FechaVencimiento),
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("UpdateCustomer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ─────────────────────────── GetOverdueCustomers

// GetOverdueCustomers devuelve los clientes con estado_pago = 'Vencido'.
func GetOverdueCustomers(ctx context.Context) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	q := `SELECT ` + customerColumns + `
		FROM customers
		WHERE estado_pago = $1
		ORDER BY created_at DESC`
	rows, err := DB.QueryContext(ctx, q, models.EstadoVencido)
	if err != nil {
		return nil, fmt.Errorf("GetOverdueCustomers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("GetOverdueCustomers: scan: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

// ─────────────────────────── InsertReminders

// ReminderInsert son los campos para registrar un recordatorio enviado.
type ReminderInsert struct {
	CustomerID   uuid.UUID
	ReminderDate time.Time
	Sent         bool
	Message      string
}

// InsertReminders registra en lote los recordatorios generados.
func InsertReminders(ctx context.Context, reminders []ReminderInsert) error {
	if len(reminders) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("InsertReminders: begin: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO payment_reminders (id, customer_id, reminder_date, sent, message, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	now := time.Now()
	for _, r := range reminders {
		if _, err := tx.ExecContext(ctx, q,
			uuid.New(), r.CustomerID, r.ReminderDate, r.Sent, r.Message, now,
		); err != nil {
			return fmt.Errorf("InsertReminders: %w", err)
		}
	}
	return tx.Commit()
}

// ─────────────────────────── GetRemindersByCustomer

// GetRemindersByCustomer devuelve el historial de recordatorios de un
// cliente, los más recientes primero.
func GetRemindersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.PaymentReminder, error) {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	const q = `
		SELECT id, customer_id, reminder_date, sent, message, created_at
		FROM payment_reminders
		WHERE customer_id = $1
		ORDER BY created_at DESC`
	rows, err := DB.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, fmt.Errorf("GetRemindersByCustomer: %w", err)
	}
	defer rows.Close()

	reminders := make([]models.PaymentReminder, 0)
	for rows.Next() {
		var r models.PaymentReminder
		if err := rows.Scan(
			&r.ID, &r.CustomerID, &r.ReminderDate, &r.Sent, &r.Message, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("GetRemindersByCustomer: scan: %w", err)
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// ─────────────────────────── GetAdmin

func GetAdmin(email string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
	defer cancel()

	var admin models.Admin
	const q = `
		SELECT id, name, email, password_hash, role, active
		FROM admins
		WHERE email = $1`
	if err := DB.QueryRowContext(ctx, q, email).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash,
		&admin.Role, &admin.Active,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetAdmin: %w", err)
	}
	return &admin, nil
}

func VerifyPassword(pw, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
