//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/sales"
)

var saleColumns = []string{
	"transaction_id", "sale_date", "sale_time", "customer_id", "gender",
	"age", "category", "quantity", "price_per_unit", "cogs", "total_sale",
}

// CopyRecords bulk-loads raw sale records into retail_sales, nulls
// included, and returns the number of rows copied.
func CopyRecords(ctx context.Context, pool *pgxpool.Pool, records []sales.Record) (int64, error) {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			nullable(r.TransactionID),
			nullable(r.SaleDate),
			timeOfDay(r.SaleTime),
			nullable(r.CustomerID),
			nullable(r.Gender),
			nullable(r.Age),
			nullable(r.Category),
			nullable(r.Quantity),
			nullable(r.PricePerUnit),
			nullable(r.COGS),
			nullable(r.TotalSale),
		})
	}

	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"retail_sales"}, saleColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy sales: %w", err)
	}

	logging.Info().
		Int64("rows", copied).
		Msg("Copied sales into retail_sales")

	return copied, nil
}

// DeleteIncomplete removes rows with a null in any required column and
// returns how many were deleted. Mirrors the in-memory cleaner.
func DeleteIncomplete(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	tag, err := pool.Exec(ctx, `
        DELETE FROM retail_sales
        WHERE transaction_id IS NULL
           OR sale_date IS NULL
           OR sale_time IS NULL
           OR gender IS NULL
           OR category IS NULL
           OR quantity IS NULL
           OR cogs IS NULL
           OR total_sale IS NULL
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to delete incomplete rows: %w", err)
	}

	logging.Info().
		Int64("rows", tag.RowsAffected()).
		Msg("Deleted incomplete rows")

	return tag.RowsAffected(), nil
}

// CountSales returns the number of rows in retail_sales.
func CountSales(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var count int64
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM retail_sales`).Scan(&count)
	return count, err
}

// nullable converts a pointer into a driver value, mapping nil to NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// timeOfDay converts a time-of-day value into a pgtype.Time for the
// TIME column.
func timeOfDay(v *time.Time) any {
	if v == nil {
		return nil
	}
	micros := int64(v.Hour()*3600+v.Minute()*60+v.Second())*1_000_000 +
		int64(v.Nanosecond()/1000)
	return pgtype.Time{Microseconds: micros, Valid: true}
}
