package database

import (
	"context"
	"database/sql"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS orders (
	id          UUID PRIMARY KEY,
	customer_id UUID NOT NULL,
	total_price NUMERIC(12,2) NOT NULL,
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS designs (
	id          UUID PRIMARY KEY,
	customer_id UUID NOT NULL,
	description TEXT NOT NULL,
	file_path   TEXT NOT NULL DEFAULT '',
	file_type   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS mockups (
	id         UUID PRIMARY KEY,
	design_id  UUID NOT NULL REFERENCES designs (id) ON DELETE CASCADE,
	color      TEXT NOT NULL,
	size       TEXT NOT NULL,
	image_path TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (design_id, color, size)
);

CREATE TABLE IF NOT EXISTS payments (
	id             UUID PRIMARY KEY,
	order_id       UUID NOT NULL REFERENCES orders (id),
	customer_id    UUID NOT NULL,
	method         TEXT NOT NULL,
	status         TEXT NOT NULL,
	amount         NUMERIC(12,2) NOT NULL,
	transaction_id TEXT NOT NULL UNIQUE,
	receipt_id     TEXT,
	card_number    TEXT,
	card_expiry    TEXT,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS payments_status_created_idx ON payments (status, created_at);
`

// Migrate applies the schema. Statements are idempotent so it is safe to run
// on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
