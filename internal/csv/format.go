/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package csv

import (
	"fmt"
	"strings"
	"time"
)

// FormatValue converts a single cell value to its textual form.
// Values come from database/sql scans into interface{}, so the concrete
// types are driver-dependent.
func FormatValue(v interface{}) string {
	if v == nil {
		return "NULL"
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FormatResults renders a tabular result as comma-joined lines, header first.
// Cell values are not quoted or escaped; the output mirrors what the caller
// would see from a plain "join by comma" over stringified cells.
func FormatResults(columnNames []string, rows [][]interface{}) string {
	if len(columnNames) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(columnNames, ","))

	for _, row := range rows {
		sb.WriteString("\n")
		values := make([]string, len(row))
		for i, val := range row {
			values[i] = FormatValue(val)
		}
		sb.WriteString(strings.Join(values, ","))
	}

	return sb.String()
}
