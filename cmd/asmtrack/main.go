package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/mlindner/asmtrack/internal/cli"
	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/fetch"
	"github.com/mlindner/asmtrack/internal/mutation"
	"github.com/mlindner/asmtrack/internal/repository"
	"github.com/mlindner/asmtrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.asmtrack/asmtrack.db
	dbPath := os.Getenv("ASMTRACK_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".asmtrack", "asmtrack.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	log, err := newLogger()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	assemblyRepo := repository.NewSQLiteAssemblyRepo(database)
	subRepo := repository.NewSQLiteSubassemblyRepo(database)
	itemRepo := repository.NewSQLiteItemRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// The adapter is both the fetcher's read surface and the mutation
	// controller's write endpoint.
	source := repository.NewSourceAdapter(projectRepo, assemblyRepo, subRepo, itemRepo, assignmentRepo)
	fetcher := fetch.NewFetcher(source, log)

	app := &cli.App{
		Projects:      service.NewProjectService(projectRepo),
		Assemblies:    service.NewAssemblyService(assemblyRepo),
		Subassemblies: service.NewSubassemblyService(subRepo),
		Items:         service.NewItemService(itemRepo),
		Users:         service.NewUserService(userRepo, assignmentRepo),
		Seed:          service.NewSeedService(uow),

		Fetcher:   fetcher,
		Mutations: mutation.NewController(source),
		Log:       log,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger builds the debug logger. ASMTRACK_LOG names a file to
// append structured logs to; unset, logging is discarded so it never
// corrupts the TUI's terminal output.
func newLogger() (*logrus.Logger, error) {
	log := logrus.New()

	path := os.Getenv("ASMTRACK_LOG")
	if path == "" {
		log.SetOutput(io.Discard)
		return log, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, nil
}
