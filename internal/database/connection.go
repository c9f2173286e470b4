/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PahVenture/pv-mcp-mssql-server/internal/config"
)

// WithConnection opens a dedicated database connection for the duration of
// fn and guarantees it is released on every exit path, including when fn
// fails or panics. Each call performs a full connect/authenticate handshake;
// nothing is pooled across requests.
func WithConnection(ctx context.Context, cfg *config.Config, fn func(ctx context.Context, db *sql.DB) error) error {
	start := time.Now()

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString())
	if err != nil {
		LogConnection(cfg, time.Since(start), err)
		return fmt.Errorf("unable to open database handle: %w", err)
	}
	defer db.Close()

	// One physical connection, never kept idle: the handle dies with this
	// request.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	if err := db.PingContext(ctx); err != nil {
		LogConnection(cfg, time.Since(start), err)
		return fmt.Errorf("unable to reach database: %w", err)
	}
	LogConnection(cfg, time.Since(start), nil)

	return fn(ctx, db)
}

// CollectRows drains a result set into column names and row values.
// A positive limit stops scanning after that many rows; the remainder of the
// result set is discarded when rows is closed by the caller.
func CollectRows(rows *sql.Rows, limit int) ([]string, [][]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read column metadata: %w", err)
	}

	var collected [][]interface{}
	for rows.Next() {
		if limit > 0 && len(collected) >= limit {
			break
		}

		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		collected = append(collected, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return columns, collected, nil
}
