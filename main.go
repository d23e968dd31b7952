package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordler/cmd"
	"wordler/config"
	"wordler/database"
	"wordler/infrastructure"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	app := &cli.App{
		Name:  "wordler",
		Usage: "score Wordle results posted in Discord",
		Action: func(c *cli.Context) error {
			return cmd.Run(c.Context)
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "start the Discord bot",
				Action: func(c *cli.Context) error {
					return cmd.Run(c.Context)
				},
			},
			newMigrateCommand(),
			newExportCommand(),
			newImportCommand(),
			newWatchCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("Application error")
	}
}

// loadConfig loads configuration for the offline commands
func loadConfig() (*config.Config, error) {
	cfg := config.Get()
	if err := cmd.ConfigureLogging(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func requireDurableBackend(cfg *config.Config) error {
	if cfg.PersistenceBackend == config.BackendMemory {
		return cmd.ErrVolatileBackend
	}
	return nil
}

func requirePostgres(cfg *config.Config) error {
	if cfg.PersistenceBackend != config.BackendPostgres {
		return fmt.Errorf("migrations need PERSISTENCE_BACKEND=postgres, got %q", cfg.PersistenceBackend)
	}
	return nil
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requirePostgres(cfg); err != nil {
						return err
					}
					return database.MigrateUp(cfg.GetDatabaseURL())
				},
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requirePostgres(cfg); err != nil {
						return err
					}
					return database.MigrateDown(cfg.GetDatabaseURL(), c.Int("steps"))
				},
			},
			{
				Name:  "status",
				Usage: "print the current migration version",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requirePostgres(cfg); err != nil {
						return err
					}
					version, dirty, err := database.MigrateStatus(cfg.GetDatabaseURL())
					if err != nil {
						return err
					}
					fmt.Printf("Version: %d\nDirty: %t\n", version, dirty)
					return nil
				},
			},
		},
	}
}

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write a chat's results to an xlsx workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "chat", Required: true, Usage: "Discord channel ID"},
			&cli.StringFlag{Name: "from", Required: true, Usage: "first submission date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "last submission date, YYYY-MM-DD (default today)"},
			&cli.StringFlag{Name: "out", Required: true, Usage: "workbook path"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := requireDurableBackend(cfg); err != nil {
				return err
			}

			from, err := time.ParseInLocation(time.DateOnly, c.String("from"), cfg.Timezone)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			to := time.Now().In(cfg.Timezone)
			if value := c.String("to"); value != "" {
				if to, err = time.ParseInLocation(time.DateOnly, value, cfg.Timezone); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}

			backend, err := cmd.OpenBackend(c.Context, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			out, err := os.Create(c.String("out"))
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", c.String("out"), err)
			}
			defer out.Close()

			rows, err := cmd.ExportResults(c.Context, backend.Repository, c.String("chat"), from, to, out)
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d results to %s\n", rows, c.String("out"))
			return out.Close()
		},
	}
}

func newImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load results from an xlsx workbook into the configured backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Required: true, Usage: "workbook path"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := requireDurableBackend(cfg); err != nil {
				return err
			}

			in, err := os.Open(c.String("in"))
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", c.String("in"), err)
			}
			defer in.Close()

			backend, err := cmd.OpenBackend(c.Context, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			summary, err := cmd.ImportResults(c.Context, backend, in)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d results, skipped %d already stored and %d invalid\n", summary.Imported, summary.Skipped, summary.Invalid)
			return nil
		},
	}
}

func newWatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "log Wordle events published to NATS",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Value: infrastructure.WordleSubjectPattern, Usage: "subject filter"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cmd.WatchEvents(c.Context, cfg.NATSServerList(), c.String("subject"))
		},
	}
}
