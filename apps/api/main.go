package main

import (
	"context"
	"expvar"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	echoapi "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/export"
	"github.com/trezcool/elimu/core/history"
	appfs "github.com/trezcool/elimu/fs"
	emailsvc "github.com/trezcool/elimu/services/email"
	logsvc "github.com/trezcool/elimu/services/logger"
	metricsvc "github.com/trezcool/elimu/services/metrics"
	sinksvc "github.com/trezcool/elimu/services/sink"
	"github.com/trezcool/elimu/storage/database"
	sqlxrepos "github.com/trezcool/elimu/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	ctx := context.Background()

	// set up loggers
	std := logsvc.NewStdLogger(conf)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	export.InitValidators(validate, translator)
	history.InitValidators(validate, translator)

	info, err := loadCatalog(conf, validate)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading catalog: %v", err), err)
	}

	templates, err := core.ParseEmailTemplates(appfs.FS, "templates/email", conf.FrontendBaseURL, conf.Debug)
	if err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, templates, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, templates, logger)
	}

	// set up DB & history (optional)
	var historySvc *history.Service
	var next metricsvc.Next
	if conf.HistoryEnabled {
		db, err := setUpDB(ctx, conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error("failed to close database", err)
			}
		}()
		historySvc = history.NewService(sqlxrepos.NewHistoryRepository(db), logger)
		next = historySvc
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metricsvc.NewRecorder(reg, next)

	sink, err := sinksvc.New(ctx, conf.Export)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up export sink: %v", err), err)
	}
	if closer, ok := sink.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	assistantSvc := assistant.NewService(info, recorder)
	exportSvc := export.NewService(sink, mailSvc, recorder, logger, export.Options{
		Brand:     conf.AppName,
		Location:  conf.Export.Timezone,
		BatchSize: conf.Export.BatchSize,
	})

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - Prometheus collectors.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			AssistantSvc: assistantSvc,
			ExportSvc:    exportSvc,
			HistorySvc:   historySvc,
			Validate:     validate,
			Translator:   translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(ctx, db.DB, conf.Database.Engine); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// loadCatalog reads the catalog override when configured, the built-in one otherwise.
func loadCatalog(conf *core.Config, validate *validator.Validate) (*catalog.PlatformInfo, error) {
	if conf.CatalogPath == "" {
		return catalog.Default(), nil
	}
	info, err := catalog.Load(conf.CatalogPath)
	if err != nil {
		return nil, err
	}
	if err = info.Validate(validate); err != nil {
		return nil, err
	}
	return info, nil
}
