package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/apps"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/export"
	"github.com/trezcool/elimu/core/history"
	logsvc "github.com/trezcool/elimu/services/logger"
	"github.com/trezcool/elimu/storage/database"
	sqlxrepos "github.com/trezcool/elimu/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	std := logsvc.NewStdLogger(conf)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	export.InitValidators(validate, translator)

	info := catalog.Default()
	if conf.CatalogPath != "" {
		if info, err = catalog.Load(conf.CatalogPath); err != nil {
			logger.Fatal(fmt.Sprintf("loading catalog: %v", err), err)
		}
	}

	var historySvc *history.Service
	if conf.HistoryEnabled {
		historySvc = history.NewService(sqlxrepos.NewHistoryRepository(db), logger)
	}

	// start CLI
	cli := commandLine{
		conf:       conf,
		db:         db,
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}
	if historySvc != nil {
		cli.assistantSvc = assistant.NewService(info, historySvc)
		cli.exportSvc = export.NewService(nil, nil, historySvc, logger, exportOptions(conf))
	} else {
		cli.assistantSvc = assistant.NewService(info, nil)
		cli.exportSvc = export.NewService(nil, nil, nil, logger, exportOptions(conf))
	}

	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		var argErr *apps.ArgumentError
		switch {
		case err == errHelp:
		case errors.As(err, &argErr):
			std.Errorf("invalid arguments: %s (run with -h for usage)", argErr)
		default:
			std.Errorf("error: %s", err)
		}
		os.Exit(1)
	}
}

func exportOptions(conf *core.Config) export.Options {
	return export.Options{
		Brand:     conf.AppName,
		Location:  conf.Export.Timezone,
		BatchSize: conf.Export.BatchSize,
	}
}
