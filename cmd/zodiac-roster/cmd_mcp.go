package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	rostermcp "github.com/ajitpratap0/zodiac-roster/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  list_people    list the roster with an optional filter and sort
  add_person     add the default person or one from arguments
  delete_person  delete a person by ID
  set_field      edit one field of a person by ID
  stats          roster statistics
  zodiac         calculator output for one birth date
  refresh        recompute derived fields as of today

Every edit is validated and written through to the configured store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			r, err := openRoster(logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}

			srv := rostermcp.NewServer(r, version, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: zodiac-roster MCP server starting", "transport", "stdio", "people", r.Len())

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
