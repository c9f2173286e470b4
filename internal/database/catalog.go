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
)

// catalogQueries maps a database/sql driver name to the statement that
// enumerates base tables, excluding views and system objects. sqlserver is
// the production driver; sqlite backs the test fixtures and local smoke runs.
var catalogQueries = map[string]string{
	"sqlserver": `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_TYPE = 'BASE TABLE'`,
	"sqlite":    `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
}

// CatalogQuery returns the base-table enumeration statement for a driver.
func CatalogQuery(driverName string) (string, error) {
	query, ok := catalogQueries[driverName]
	if !ok {
		return "", fmt.Errorf("no catalog query for driver %q", driverName)
	}
	return query, nil
}

// ListTables enumerates the base tables visible on the connection, in
// whatever order the catalog yields them.
func ListTables(ctx context.Context, db *sql.DB, driverName string) ([]string, error) {
	query, err := CatalogQuery(driverName)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table catalog: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table catalog: %w", err)
	}

	return tables, nil
}
