package commands

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memoryd/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "memoryd",
		Usage: "A persistent memory store for AI agents, served over MCP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the memory database (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewMemoryCommand(),
			NewStatusCommand(),
		},
	}
}

// loadConfig loads the configuration, falling back to defaults when the file
// does not exist, and applies the --db override.
func loadConfig(cmd *cli.Command) *config.Config {
	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Debug("config not found, using defaults", "path", configPath, "error", err)
		cfg = config.Default()
	}
	if db := cmd.String("db"); db != "" {
		cfg.Database.Path = db
	}
	return cfg
}
