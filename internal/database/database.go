// sentiric-numbering-service/internal/database/database.go
package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema, numbering_plans tablosunu yoksa oluşturur.
const schema = `
CREATE TABLE IF NOT EXISTS numbering_plans (
	region     TEXT PRIMARY KEY CHECK (region ~ '^[A-Z]{2}$'),
	document   TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewConnection, havuzu kurar ve bağlantıyı doğrular.
func NewConnection(ctx context.Context, url string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	// Plan tablosu küçük ve yalnızca açılışta/güncellemede okunuyor.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// EnsureSchema, servisin ihtiyaç duyduğu tabloları oluşturur.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
