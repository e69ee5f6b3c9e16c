package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/marloe/standup/internal"
	"github.com/marloe/standup/internal/config"
)

var version = "dev"

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadFile(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithTarget(cmd.Args().First()),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "standup",
		Usage:     "Terminal dashboard over a directory tree of projects",
		Version:   version,
		ArgsUsage: "[project|scratch|journal|guide]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.standup/config.yaml",
				Value:       config.FilePath(),
				Sources:     cli.EnvVars("STANDUP_CONFIG_FILE"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "standup:", err)
		os.Exit(1)
	}
}
