package cli

import (
	"fmt"

	"github.com/recollect-ai/recollect/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the Model Context Protocol interface on stdio",
	Long:  "Expose session recall as MCP tools over stdin/stdout, for agents that speak MCP instead of using hooks.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	srv := mcp.NewServer(mcp.ServerConfig{
		DB:      db,
		Recall:  cfg.Recall,
		Version: VersionString(),
	})

	if err := mcp.ServeStdio(srv); err != nil {
		return fmt.Errorf("mcp serve: %w", err)
	}
	return nil
}
