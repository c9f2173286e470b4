/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package resources

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PahVenture/pv-mcp-mssql-server/internal/config"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/csv"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/database"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/logging"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/mcp"
)

// PreviewRowLimit caps the number of rows returned when a table resource
// is read. The full table is available through execute_sql.
const PreviewRowLimit = 100

// TableCatalog exposes every base table of the configured database as an
// MCP resource. It implements mcp.ResourceProvider.
type TableCatalog struct {
	provider config.Provider
}

func NewTableCatalog(provider config.Provider) *TableCatalog {
	return &TableCatalog{provider: provider}
}

// List enumerates base tables as resources. Listing is a discovery surface,
// so failures degrade to an empty list instead of failing the RPC; the cause
// is logged for the operator.
func (c *TableCatalog) List() []mcp.Resource {
	cfg, err := c.provider.Resolve()
	if err != nil {
		logging.Error("Failed to resolve configuration for resource listing", "error", err.Error())
		return []mcp.Resource{}
	}

	var tables []string
	err = database.WithConnection(context.Background(), cfg, func(ctx context.Context, db *sql.DB) error {
		var listErr error
		tables, listErr = database.ListTables(ctx, db, cfg.Driver)
		return listErr
	})
	if err != nil {
		category := database.ClassifyError(err)
		logging.Error("Failed to list database tables",
			"error", err.Error(),
			"category", category.String(),
			"hint", category.Hint())
		return []mcp.Resource{}
	}

	resources := make([]mcp.Resource, 0, len(tables))
	for _, table := range tables {
		resources = append(resources, mcp.Resource{
			URI:         TableURI(table),
			Name:        fmt.Sprintf("Table: %s", table),
			Description: fmt.Sprintf("Data in table: %s", table),
			MimeType:    "text/plain",
		})
	}
	return resources
}

// Read returns a CSV preview of the addressed table, capped at
// PreviewRowLimit rows.
func (c *TableCatalog) Read(ctx context.Context, uri string) (mcp.ResourceContent, error) {
	table, err := ParseTableURI(uri)
	if err != nil {
		return mcp.ResourceContent{}, err
	}

	cfg, err := c.provider.Resolve()
	if err != nil {
		return mcp.ResourceContent{}, err
	}

	var text string
	err = database.WithConnection(ctx, cfg, func(ctx context.Context, db *sql.DB) error {
		rows, queryErr := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", table))
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		columns, values, collectErr := database.CollectRows(rows, PreviewRowLimit)
		if collectErr != nil {
			return collectErr
		}
		text = csv.FormatResults(columns, values)
		return nil
	})
	if err != nil {
		return mcp.ResourceContent{}, fmt.Errorf("database error reading %s: %w", uri, err)
	}
	return mcp.NewResourceSuccess(uri, "text/plain", text)
}
