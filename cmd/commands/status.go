package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memoryd/internal/mcp"
	"github.com/dohr-michael/memoryd/internal/store"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show database location and memory count",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := loadConfig(cmd)

			st, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			count, err := st.Count()
			if err != nil {
				return fmt.Errorf("count memories: %w", err)
			}

			fmt.Printf("%s %s\n", mcp.ServerName, mcp.Version)
			fmt.Printf("Database: %s\n", cfg.Database.Path)
			fmt.Printf("Memories: %d\n", count)
			return nil
		},
	}
}
