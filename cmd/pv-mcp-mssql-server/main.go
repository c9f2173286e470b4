/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PahVenture/pv-mcp-mssql-server/internal/config"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/logging"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/mcp"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/resources"
	"github.com/PahVenture/pv-mcp-mssql-server/internal/tools"

	_ "github.com/denisenkom/go-mssqldb"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "pv-mcp-mssql-server",
	Short: "MCP server exposing a Microsoft SQL Server database",
	Long: `pv-mcp-mssql-server speaks the Model Context Protocol over stdio and
bridges it to a Microsoft SQL Server database. Tables are listed as
resources with CSV previews, and the execute_sql tool runs arbitrary
statements against the configured database.

Connection settings come from MSSQL_* environment variables, optionally
layered over a YAML configuration file.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "",
		"Path to YAML configuration file (environment variables take precedence)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Flags are parsed at this point; runtime errors should not print usage.
	cmd.SilenceUsage = true

	provider := &config.EnvProvider{Path: configFile}

	// Resolve once up front so a broken environment fails at startup
	// instead of on the first tool call.
	cfg, err := provider.Resolve()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	redacted := cfg.Redacted()
	logging.Info("Starting MSSQL MCP server",
		"server", mcp.ServerName,
		"version", mcp.ServerVersion,
		"host", redacted.Host,
		"database", redacted.Database,
		"user", redacted.User)

	if configFile != "" {
		// Each request resolves configuration fresh, so a reload only
		// revalidates the file and reports problems early.
		watcher, err := config.NewFileWatcher(configFile, func() error {
			_, err := provider.Resolve()
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to watch configuration file: %w", err)
		}
		watcher.Start()
		defer watcher.Stop()
	}

	registry := tools.NewRegistry()
	registry.Register(tools.ExecuteSQLTool(provider))

	server := mcp.NewServer(registry)
	server.SetResourceProvider(resources.NewTableCatalog(provider))

	return server.Run()
}
