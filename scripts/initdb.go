// Comando de inicialización: crea el esquema y siembra el primer admin.
//
//	go run ./scripts
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id UUID PRIMARY KEY,
	nombre_cliente TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	telefono TEXT NOT NULL,
	direccion TEXT NOT NULL,
	ubicacion_region TEXT NOT NULL,
	referencia_domicilio TEXT NOT NULL DEFAULT '',
	referencia_foto_url TEXT,
	folio_foto_url TEXT,
	tipo_instalacion TEXT NOT NULL CHECK (tipo_instalacion IN ('Fibra','Antena')),
	ip_asignada TEXT NOT NULL,
	megas_contratados INTEGER NOT NULL,
	fecha_instalacion TEXT NOT NULL,
	metodo_pago TEXT NOT NULL CHECK (metodo_pago IN ('Efectivo','Tarjeta')),
	folio_fibra_migracion TEXT NOT NULL DEFAULT '',
	notas TEXT,
	estado_pago TEXT NOT NULL DEFAULT 'Pendiente'
		CHECK (estado_pago IN ('Pagado','Pendiente','Vencido')),
	fecha_ultimo_pago TEXT,
	fecha_vencimiento TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_customers_estado_pago ON customers (estado_pago);
CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers (created_at DESC);

CREATE TABLE IF NOT EXISTS payment_reminders (
	id UUID PRIMARY KEY,
	customer_id UUID NOT NULL REFERENCES customers (id),
	reminder_date TIMESTAMPTZ NOT NULL,
	sent BOOLEAN NOT NULL DEFAULT false,
	message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS admins (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'admin',
	active BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Archivo .env no encontrado, se usan las variables de entorno")
	}

	db, err := sql.Open("pgx", buildDSN())
	if err != nil {
		log.Fatalf("Error conectando a la base de datos: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("Error creando el esquema: %v", err)
	}
	log.Println("Esquema creado ✓")

	// Admin inicial (solo si no existe)
	email := env("ADMIN_EMAIL", "admin@skyweb.mx")
	password := env("ADMIN_PASSWORD", "cambiame")

	var exists bool
	if err := db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)", email,
	).Scan(&exists); err != nil {
		log.Fatalf("Error consultando admins: %v", err)
	}
	if exists {
		log.Printf("El admin %s ya existe, no se siembra de nuevo", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error generando el hash de contraseña: %v", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO admins (id, name, email, password_hash, role, active)
		 VALUES ($1, $2, $3, $4, 'admin', true)`,
		uuid.New(), "Administrador", email, string(hash),
	); err != nil {
		log.Fatalf("Error sembrando el admin: %v", err)
	}
	log.Printf("Admin %s creado ✓", email)
}

func buildDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		env("PG_HOST", "localhost"),
		env("PG_PORT", "5432"),
		env("PG_USER", "postgres"),
		os.Getenv("PG_PASSWORD"),
		env("PG_DATABASE", "skyweb"),
		env("PG_SSL_MODE", "disable"),
	)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
