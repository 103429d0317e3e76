package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	memorymcp "github.com/dohr-michael/memoryd/internal/mcp"
	"github.com/dohr-michael/memoryd/internal/store"
	"github.com/dohr-michael/memoryd/internal/tools"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the memory MCP server (stdio)",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg := loadConfig(cmd)

	// Logging goes to stderr; stdout belongs to the MCP stdio transport.
	level := slog.LevelWarn
	if cmd.Bool("debug") || cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	fmt.Fprintln(os.Stderr, "Starting Memory Manager MCP Server...")
	fmt.Fprintln(os.Stderr, "This server allows you to store and retrieve memories and ideas.")

	// An unreachable database is fatal at startup; per-call failures later are
	// reported to the client as text.
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	slog.Debug("starting MCP server", "db", cfg.Database.Path)

	server := memorymcp.NewServer(tools.NewDispatcher(st))
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
