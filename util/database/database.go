package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct{ Pool *pgxpool.Pool }

func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}
	db := &DB{Pool: p}
	if err := db.createTables(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			CONSTRAINT users_email_key UNIQUE (email)
		)`,
		`CREATE TABLE IF NOT EXISTS requests (
			id BIGSERIAL PRIMARY KEY,
			description TEXT NOT NULL,
			requestor_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			created TIMESTAMP NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			available BOOLEAN NOT NULL,
			owner_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			request_id BIGINT REFERENCES requests (id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGSERIAL PRIMARY KEY,
			start_date TIMESTAMP NOT NULL,
			end_date TIMESTAMP NOT NULL,
			status TEXT NOT NULL
				CHECK (status IN ('WAITING','APPROVED','REJECTED','CANCELED')),
			booker_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			item_id BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id BIGSERIAL PRIMARY KEY,
			text TEXT NOT NULL,
			item_id BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
			author_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			created TIMESTAMP NOT NULL DEFAULT now()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_items_owner_id ON items (owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_request_id ON items (request_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_booker_id ON bookings (booker_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_item_id ON bookings (item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_item_id ON comments (item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_requestor_id ON requests (requestor_id)`,
	}

	for _, q := range queries {
		if _, err := db.Pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Close() { db.Pool.Close() }
