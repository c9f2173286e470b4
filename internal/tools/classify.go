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

import "strings"

// StatementKind selects the execution path for a SQL statement.
type StatementKind int

const (
	// StatementOther runs through Exec inside a committed transaction.
	StatementOther StatementKind = iota
	// StatementShowTables is the MySQL-style catalog shim.
	StatementShowTables
	// StatementSelect runs through Query and returns a CSV result set.
	StatementSelect
)

// ClassifyStatement decides how a statement will be executed. Classification
// happens before anything touches the database so that SHOW TABLES never
// reaches a server that would reject it. Leading whitespace and letter case
// are ignored; anything that is not SHOW TABLES or a SELECT is treated as a
// mutation.
func ClassifyStatement(query string) StatementKind {
	normalized := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case normalized == "SHOW TABLES":
		return StatementShowTables
	case strings.HasPrefix(normalized, "SELECT"):
		return StatementSelect
	default:
		return StatementOther
	}
}
