package main

import (
	"context"
	"github.com/datasculptor/data-sculptor/internal/config"
	"github.com/datasculptor/data-sculptor/internal/filter"
	"github.com/datasculptor/data-sculptor/internal/record"
	"github.com/datasculptor/data-sculptor/internal/sculptor"
	"github.com/icinga/icinga-go-library/database"
	"github.com/icinga/icinga-go-library/logging"
	"github.com/icinga/icinga-go-library/utils"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	conf := config.ParseFlagsAndConfig()

	logs, err := logging.NewLoggingFromConfig("data-sculptor", conf.Logging)
	if err != nil {
		utils.PrintErrorThenExit(err, config.ExitFailure)
	}

	logger := logs.GetLogger()
	defer func() { _ = logger.Sync() }()

	logger.Debugf("Starting data-sculptor (%s)", config.Version)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store record.Store
	switch conf.Source {
	case config.SourceDatabase:
		db, err := database.NewDbFromConfig(&conf.Database, logs.GetChildLogger("database"), database.RetryConnectorCallbacks{})
		if err != nil {
			logger.Fatalf("Cannot create database connection from config: %+v", err)
		}
		defer func() { _ = db.Close() }()

		logger.Infof("Connecting to database at '%s'", db.GetAddr())
		if err := db.PingContext(ctx); err != nil {
			logger.Fatalf("Cannot connect to the database: %+v", err)
		}

		store = &record.DatabaseStore{DB: db.DB, Table: conf.Table}
	default:
		store = &record.FileStore{Path: conf.Input}
	}

	manager := sculptor.NewManager(logs.GetChildLogger("manager"))
	if err := manager.Load(ctx, store); err != nil {
		logger.Fatalf("%+v", err)
	}

	invalid := 0
	for _, fc := range conf.Filters {
		// Types have already been checked while validating the config.
		t, _ := filter.ParseType(fc.Type)
		if _, err := manager.AddFilter(t, fc.Expression); err != nil {
			logger.Error(err)
			invalid++
		}
	}
	if invalid > 0 {
		logger.Errorf("%d filter(s) could not be parsed, exiting", invalid)
		_ = logger.Sync()
		os.Exit(config.ExitFailure)
	}

	logger.Infof("Showing %d of %d days", len(manager.Visible()), len(manager.Days()))

	if conf.Print || conf.Output == "" {
		if err := manager.Render(os.Stdout); err != nil {
			logger.Fatalf("Cannot print records: %+v", err)
		}
	}

	switch conf.Output {
	case "":
		// Nothing to export.
	case config.OutputStdout:
		if err := manager.Export(os.Stdout); err != nil {
			logger.Fatalf("Cannot export records: %+v", err)
		}
	default:
		if err := manager.ExportFile(conf.Output); err != nil {
			logger.Fatalf("Cannot export records: %+v", err)
		}
	}
}
