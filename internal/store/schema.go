//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store persists retail sales in PostgreSQL, mirroring the
// load-then-clean workflow of the reporting pipeline.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the retail sales table. Every column is nullable so raw
// loads can carry incomplete rows; cleaning removes them afterwards.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS retail_sales (
    transaction_id  INTEGER,
    sale_date       DATE,
    sale_time       TIME,
    customer_id     INTEGER,
    gender          VARCHAR(10),
    age             INTEGER,
    category        VARCHAR(35),
    quantity        INTEGER,
    price_per_unit  NUMERIC(10,2),
    cogs            NUMERIC(10,2),
    total_sale      NUMERIC(10,2)
);

CREATE INDEX IF NOT EXISTS idx_retail_sales_txn ON retail_sales(transaction_id);
CREATE INDEX IF NOT EXISTS idx_retail_sales_date ON retail_sales(sale_date);
CREATE INDEX IF NOT EXISTS idx_retail_sales_customer ON retail_sales(customer_id);
CREATE INDEX IF NOT EXISTS idx_retail_sales_category ON retail_sales(category);
`

// Drop schema SQL
const dropSchemaSQL = `
DROP TABLE IF EXISTS retail_sales CASCADE;
`

// CreateSchema creates the retail sales schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the retail sales schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
