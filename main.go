package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for the migrations runner

	"github.com/planroom-inc/planroom-engine/pkg/config"
	"github.com/planroom-inc/planroom-engine/pkg/database"
	"github.com/planroom-inc/planroom-engine/pkg/logging"
	"github.com/planroom-inc/planroom-engine/pkg/repositories"
	"github.com/planroom-inc/planroom-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "planroom-engine",
		Usage:   "Cross-discipline conflict detection for construction drawing sets",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			crosscheckCommand(),
			statsCommand(),
			migrateCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// crosscheckCommand returns the primary command: run every check for a
// project, replace its stored conflicts, and print the report.
func crosscheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "crosscheck",
		Usage:     "Run all conflict checks for a project and store the results",
		ArgsUsage: "PROJECT_NUMBER",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: pretty or json",
				Value:   "pretty",
			},
		},
		Action: runCrossCheck,
	}
}

// statsCommand returns the read-only dataset statistics command.
func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show dataset statistics and stored conflict counts without running checks",
		ArgsUsage: "PROJECT_NUMBER",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: pretty or json",
				Value:   "pretty",
			},
		},
		Action: runStats,
	}
}

// migrateCommand returns the schema migration command.
func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Directory containing the migration files",
			},
		},
		Action: runMigrate,
	}
}

func runCrossCheck(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: project number")
	}
	projectNumber := c.Args().Get(0)

	eng, err := setupEngine(c)
	if err != nil {
		return err
	}
	defer eng.close()

	result, err := eng.service.Run(c.Context, projectNumber)
	if err != nil {
		return err
	}

	// Detected conflicts are a normal outcome, not a failure; the exit
	// code stays zero whenever the run itself completed.
	return renderOutput(c, result, func() {
		services.RenderText(os.Stdout, result)
	})
}

func runStats(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: project number")
	}
	projectNumber := c.Args().Get(0)

	eng, err := setupEngine(c)
	if err != nil {
		return err
	}
	defer eng.close()

	result, err := eng.service.Stats(c.Context, projectNumber)
	if err != nil {
		return err
	}

	return renderOutput(c, result, func() {
		services.RenderStats(os.Stdout, result)
	})
}

func runMigrate(c *cli.Context) error {
	cfg, logger, err := loadConfigAndLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := cfg.Migrations.Path
	if override := c.String("path"); override != "" {
		path = override
	}

	connStr := cfg.Database.ConnectionString()
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sqlDB.Close()

	logger.Info("Running migrations",
		zap.String("path", path),
		zap.String("database", logging.SanitizeConnectionString(connStr)))

	return database.RunMigrations(sqlDB, path, logger)
}

// engineContext bundles the dependencies a command needs after bootstrap.
type engineContext struct {
	logger  *zap.Logger
	db      *database.DB
	service services.CrossCheckService
}

func (e *engineContext) close() {
	e.db.Close()
	_ = e.logger.Sync()
}

// setupEngine loads configuration, builds the logger, connects to the fact
// store, and wires the cross-check service.
func setupEngine(c *cli.Context) (*engineContext, error) {
	cfg, logger, err := loadConfigAndLogger(c)
	if err != nil {
		return nil, err
	}

	connStr := cfg.Database.ConnectionString()
	db, err := database.NewConnection(c.Context, &database.Config{
		URL:            connStr,
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Debug("Connected to database",
		zap.String("dsn", logging.SanitizeConnectionString(connStr)))

	service := services.NewCrossCheckService(
		repositories.NewProjectRepository(db),
		repositories.NewSheetRepository(db),
		repositories.NewLineRepository(db),
		repositories.NewEquipmentRepository(db),
		repositories.NewInstrumentRepository(db),
		repositories.NewConflictRepository(db),
		logger,
	)

	return &engineContext{logger: logger, db: db, service: service}, nil
}

func loadConfigAndLogger(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(Version)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if override := c.String("log-level"); override != "" {
		level = override
	}

	logger, err := logging.New(level, cfg.Env)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// renderOutput prints result as indented JSON or through the pretty
// renderer, per the command's --output flag.
func renderOutput(c *cli.Context, result any, pretty func()) error {
	switch format := c.String("output"); format {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	case "pretty":
		pretty()
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
