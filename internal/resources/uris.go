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
	"errors"
	"fmt"
	"strings"
)

// Resource URI format: mssql://<table>/data. Only the table segment is
// semantically meaningful; the /data suffix marks the preview content kind.
const (
	Scheme     = "mssql"
	uriPrefix  = Scheme + "://"
	dataSuffix = "/data"
)

// ErrInvalidURI is returned when a resource address does not carry the
// required scheme. This is caller misuse, not a database failure.
var ErrInvalidURI = errors.New("invalid resource URI")

// TableURI renders the resource address for a table.
func TableURI(table string) string {
	return uriPrefix + table + dataSuffix
}

// ParseTableURI extracts the table name from a resource address.
func ParseTableURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, uriPrefix) {
		return "", fmt.Errorf("%w: missing %s scheme: %s", ErrInvalidURI, uriPrefix, uri)
	}

	rest := strings.TrimPrefix(uri, uriPrefix)
	table := rest
	if idx := strings.Index(rest, "/"); idx >= 0 {
		table = rest[:idx]
	}
	if table == "" {
		return "", fmt.Errorf("%w: empty table name: %s", ErrInvalidURI, uri)
	}
	return table, nil
}
