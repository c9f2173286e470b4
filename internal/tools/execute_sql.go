/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/PahVenture/pv-mcp-mssql-server/internal/config"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/csv"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/database"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/logging"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/mcp"
)

// ToolName is the registered name of the SQL execution tool.
const ToolName = "execute_sql"

// ExecuteSQLTool builds the execute_sql tool backed by the given
// configuration provider. Each call resolves configuration fresh and opens
// its own short-lived connection.
func ExecuteSQLTool(provider config.Provider) Tool {
	return Tool{
		Definition: mcp.Tool{
			Name:        ToolName,
			Description: "Execute an SQL query on the SQL Server",
			InputSchema: mcp.InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "The SQL query to execute",
					},
				},
				Required: []string{"query"},
			},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (mcp.ToolResponse, error) {
			query, ok := args["query"].(string)
			if !ok || strings.TrimSpace(query) == "" {
				return mcp.ToolResponse{}, fmt.Errorf("missing required argument: query")
			}
			return runQuery(ctx, provider, query)
		},
	}
}

func runQuery(ctx context.Context, provider config.Provider, query string) (mcp.ToolResponse, error) {
	cfg, err := provider.Resolve()
	if err != nil {
		return mcp.ToolResponse{}, err
	}

	kind := ClassifyStatement(query)
	logging.Debug("Executing SQL statement", "kind", kindLabel(kind))

	var text string
	start := time.Now()
	err = database.WithConnection(ctx, cfg, func(ctx context.Context, db *sql.DB) error {
		var runErr error
		switch kind {
		case StatementShowTables:
			text, runErr = runShowTables(ctx, db, cfg)
		case StatementSelect:
			text, runErr = runSelect(ctx, db, query)
		default:
			text, runErr = runMutation(ctx, db, query)
		}
		return runErr
	})
	database.LogQuery(query, time.Since(start), err)
	if err != nil {
		return mcp.NewToolError(fmt.Sprintf("Error executing query: %s", err.Error()))
	}
	return mcp.NewToolSuccess(text)
}

// runShowTables serves the MySQL-style SHOW TABLES shim from the catalog
// views, keeping the Tables_in_<database> header shape clients expect.
func runShowTables(ctx context.Context, db *sql.DB, cfg *config.Config) (string, error) {
	tables, err := database.ListTables(ctx, db, cfg.Driver)
	if err != nil {
		return "", err
	}
	rows := make([][]interface{}, 0, len(tables))
	for _, table := range tables {
		rows = append(rows, []interface{}{table})
	}
	return csv.FormatResults([]string{"Tables_in_" + cfg.Database}, rows), nil
}

func runSelect(ctx context.Context, db *sql.DB, query string) (string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	columns, values, err := database.CollectRows(rows, 0)
	if err != nil {
		return "", err
	}
	return csv.FormatResults(columns, values), nil
}

// runMutation executes a non-SELECT statement inside a transaction so that a
// mid-statement failure leaves nothing half-applied.
func runMutation(ctx context.Context, db *sql.DB, query string) (string, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}

	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Query executed successfully. Rows affected: %d", affected), nil
}

func kindLabel(kind StatementKind) string {
	switch kind {
	case StatementShowTables:
		return "show_tables"
	case StatementSelect:
		return "select"
	default:
		return "mutation"
	}
}
