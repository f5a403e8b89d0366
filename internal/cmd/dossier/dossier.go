// Package dossier parses dossier command flags and runs its subcommands.
package dossier

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/louisbranch/dossier/internal/platform/cmd"
	"github.com/louisbranch/dossier/internal/platform/logging"
	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
	"go.uber.org/zap"
)

const (
	commandPrint = "print"
	commandIndex = "index"
	commandLinks = "links"
	commandList  = "list"
	commandShow  = "show"
)

// Config holds dossier command configuration.
type Config struct {
	Language    string `env:"LANGUAGE" envDefault:"en-US"`
	BaseDir     string `env:"BASE_DIR"`
	MugshotDir  string `env:"MUGSHOT_DIR" envDefault:"mugshots"`
	PrintNotes  bool   `env:"PRINT_NOTES"`
	IndexPath   string `env:"INDEX_PATH" envDefault:"dossier.db"`
	MetricsFile string `env:"METRICS_FILE"`
	Workers     int    `env:"INDEX_WORKERS" envDefault:"4"`
	PageSize    int    `env:"PAGE_SIZE"`
	Log         logging.Config

	Command   string
	Args      []string
	PageToken string
}

// ParseConfig parses environment and flags into Config. The first
// positional argument names the subcommand.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "display language for print exports")
	fs.StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "directory relative contact links resolve against")
	fs.StringVar(&cfg.MugshotDir, "mugshot-dir", cfg.MugshotDir, "directory for printed portrait files")
	fs.BoolVar(&cfg.PrintNotes, "notes", cfg.PrintNotes, "include contact notes in print exports")
	fs.StringVar(&cfg.IndexPath, "index", cfg.IndexPath, "contact index database path")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write metrics to this textfile on exit")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "profiles indexed concurrently")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "contacts per list page (0 uses the index default)")
	fs.StringVar(&cfg.PageToken, "page-token", "", "resume a list after this token")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, fmt.Errorf("command is required (%s)",
			strings.Join([]string{commandPrint, commandIndex, commandLinks, commandList, commandShow}, ", "))
	}
	cfg.Command = strings.ToLower(strings.TrimSpace(rest[0]))
	cfg.Args = rest[1:]
	switch cfg.Command {
	case commandPrint, commandLinks, commandList:
		if len(cfg.Args) != 1 {
			return Config{}, fmt.Errorf("%s expects one file", cfg.Command)
		}
	case commandShow:
		if len(cfg.Args) != 1 {
			return Config{}, fmt.Errorf("show expects one contact guid")
		}
	case commandIndex:
		if len(cfg.Args) == 0 {
			return Config{}, fmt.Errorf("index expects at least one profile")
		}
	default:
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}
	return cfg, nil
}

// Run executes the configured subcommand, writing its output to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceDossier, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		runErr := dispatch(ctx, cfg, logger, out)
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("write metrics textfile", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
		return runErr
	})
}

func dispatch(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	switch cfg.Command {
	case commandPrint:
		return runPrint(ctx, cfg, logger, out)
	case commandIndex:
		return runIndex(ctx, cfg, logger, out)
	case commandLinks:
		return runLinks(ctx, cfg, out)
	case commandList:
		return runList(ctx, cfg, out)
	case commandShow:
		return runShow(ctx, cfg, out)
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}
