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

import "strings"

// ErrorCategory buckets a database failure for diagnostics. The categories
// mirror the failure modes an operator can act on: network reachability,
// authentication, and database-level access.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryTimeout
	CategoryAuth
	CategoryAccess
)

// String returns the category name used in log fields.
func (c ErrorCategory) String() string {
	switch c {
	case CategoryTimeout:
		return "timeout"
	case CategoryAuth:
		return "auth"
	case CategoryAccess:
		return "access"
	default:
		return "unknown"
	}
}

// Hint returns an operator-facing remediation hint for the category.
func (c ErrorCategory) Hint() string {
	switch c {
	case CategoryTimeout:
		return "check network/firewall settings or increase the login timeout"
	case CategoryAuth:
		return "check username and password"
	case CategoryAccess:
		return "check database name and user permissions"
	default:
		return ""
	}
}

// ClassifyError maps a driver error to an ErrorCategory by inspecting its
// text. Driver errors carry no stable codes across backends, so substring
// matching is the only portable signal.
func ClassifyError(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "login timeout"),
		strings.Contains(msg, "i/o timeout"),
		strings.Contains(msg, "context deadline exceeded"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"):
		return CategoryTimeout
	case strings.Contains(msg, "login failed"),
		strings.Contains(msg, "login error"),
		strings.Contains(msg, "authentication failed"):
		return CategoryAuth
	case strings.Contains(msg, "cannot open database"),
		strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "permission denied"):
		return CategoryAccess
	default:
		return CategoryUnknown
	}
}
