// internal/database/db.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	// driver pgx en modo database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
)

var DB *sql.DB

// Init abre el pool de conexiones y verifica la conexión.
// Si la base no está configurada o no responde, el servidor no arranca.
func Init() error {
	dsn := buildDSN()
	var err error

	DB, err = sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}

	// Parámetros del pool
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Verificamos la conexión (tiempo límite 3 s)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err = DB.PingContext(ctx); err != nil {
		_ = DB.Close()
		return fmt.Errorf("db.Ping: %w", err)
	}

	log.Println("[database] PostgreSQL conectado ✓")
	return nil
}

// Close cierra el pool (llamar con defer database.Close()).
func Close() { _ = DB.Close() }

// ─────────────────────────────── helpers

func buildDSN() string {
	host := env("PG_HOST", "localhost")
	port := env("PG_PORT", "5432")
	user := env("PG_USER", "postgres")
	password := os.Getenv("PG_PASSWORD") // puede estar vacío
	dbname := env("PG_DATABASE", "skyweb")
	sslmode := env("PG_SSL_MODE", "disable")

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
