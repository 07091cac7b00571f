package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sadopc/sprout/internal/account"
	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/classify"
	"github.com/sadopc/sprout/internal/config"
	"github.com/sadopc/sprout/internal/events"
	"github.com/sadopc/sprout/internal/logging"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/tui"
	"github.com/sadopc/sprout/internal/weather"
	"github.com/sadopc/sprout/internal/wizard"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "sprout",
		Short:         "Find plants that fit your space and climate",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	f := root.PersistentFlags()
	f.String("config", "", "config file (default $XDG_CONFIG_HOME/sprout/config.yaml)")
	f.String("db", "", "database path (default $XDG_CONFIG_HOME/sprout/sprout.db)")
	f.String("log-file", "", "write logs to this file")
	f.Bool("debug", false, "log at debug level")
	f.Uint64("seed", 0, "seed for simulated weather and sunlight (0 = random)")
	for key, name := range map[string]string{
		"config":       "config",
		"store.path":   "db",
		"logging.file": "log-file",
		"debug":        "debug",
		"random.seed":  "seed",
	} {
		_ = v.BindPFlag(key, f.Lookup(name))
	}

	root.AddCommand(newConfigCmd(v))
	return root
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect sprout configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(v)
				if err != nil {
					return err
				}
				out, err := cfg.YAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			},
		},
		&cobra.Command{
			Use:   "default",
			Short: "Print the default config.yaml",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := cmd.OutOrStdout().Write(config.DefaultFile())
				return err
			},
		},
	)
	return cmd
}

func run(cfg *config.Settings) error {
	dbPath := cfg.Store.Path
	if dbPath == "" {
		var err error
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return err
		}
	}

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = filepath.Join(filepath.Dir(dbPath), "sprout.log")
	}
	closeLog, err := logging.Init(logging.Options{
		File:   logFile,
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
	if err != nil {
		return err
	}
	defer closeLog()
	if cfg.Debug {
		logging.SetLevel(slog.LevelDebug)
	}

	bus := events.NewBus(logging.ForService("events"))
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := bus.Trace(ctx); err != nil {
		return err
	}

	s, err := store.New(dbPath,
		store.WithBus(bus),
		store.WithLogger(logging.ForService("store")),
		store.WithHistoryLimit(cfg.History.Limit),
	)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	synth := weather.NewSynthesizer(weather.DefaultTable(), weather.NewRand(cfg.Random.Seed),
		weather.WithCache(cfg.Weather.CacheTTL),
		weather.WithLogger(logging.ForService("weather")),
	)
	classifier := classify.New(classify.Limits{
		General:     cfg.Upload.MaxBytes,
		Measurement: cfg.Upload.MeasurementMaxBytes,
	})

	app := tui.NewApp(tui.Deps{
		Store:   s,
		Wizard:  wizard.New(s, catalog.Default(), synth, wizard.WithClassifier(classifier)),
		Account: account.NewService(s, logging.ForService("account")),
		Bus:     bus,
		Delays:  wizard.Delays(cfg.Delays),
		Rand:    weather.NewRand(cfg.Random.Seed),
	})
	defer app.Close()

	slog.Info("starting", "db", dbPath)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
