package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/elimu/apps"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf         *core.Config
	db           *sqlx.DB
	assistantSvc assistant.ServiceInterface
	exportSvc    *export.Service
	validate     *validator.Validate
	translator   ut.Translator
	out          io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command: up, up-by-one, up-to, down, down-to, redo, reset, status, version")
	fmt.Fprintln(cli.out, "  analyze -query QUERY - classify a query and print the assistant's reply")
	fmt.Fprintln(cli.out, "  export -in FILE -format txt|md|json|pdf [-title TITLE] [-from DATE] [-to DATE] [-out DIR] - export a chat")
	fmt.Fprintln(cli.out, "  token -sub USER_ID [-email EMAIL] [-ttl DURATION] - sign a bearer token for local testing")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	analyzeCmd := flag.NewFlagSet("analyze", flag.ContinueOnError)
	analyzeCmd.SetOutput(cli.out)
	analyzeQuery := analyzeCmd.String("query", "", "The chat query to analyze.")

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	exportIn := exportCmd.String("in", "", "JSON file holding the messages (an array, or an object with a \"messages\" key). Use - for stdin.")
	exportFormat := exportCmd.String("format", string(export.FormatText), "The export format: txt, md, json or pdf.")
	exportTitle := exportCmd.String("title", "", "The transcript title.")
	exportFrom := exportCmd.String("from", "", "Only keep messages sent at or after this RFC3339 date.")
	exportTo := exportCmd.String("to", "", "Only keep messages sent at or before this RFC3339 date.")
	exportOut := exportCmd.String("out", ".", "The output directory.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	tokenSub := tokenCmd.String("sub", "", "The user ID.")
	tokenEmail := tokenCmd.String("email", "", "The user's email.")
	tokenTTL := tokenCmd.Duration("ttl", time.Hour, "How long the token is valid.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "analyze":
		if err := analyzeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if core.CleanString(*analyzeQuery) == "" {
			analyzeCmd.Usage()
			return errHelp
		}
		return cli.analyze(*analyzeQuery)

	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportIn == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(exportArgs{
			in:     *exportIn,
			format: *exportFormat,
			title:  *exportTitle,
			from:   *exportFrom,
			to:     *exportTo,
			outDir: *exportOut,
		})

	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenSub == "" {
			tokenCmd.Usage()
			return errHelp
		}
		if *tokenTTL <= 0 {
			return apps.NewArgumentError("ttl", "must be positive")
		}
		return cli.token(*tokenSub, *tokenEmail, *tokenTTL)

	default:
		cli.printUsage()
		return errHelp
	}
}

func stdoutIsTerminal() bool {
	return isTerminalFunc(int(os.Stdout.Fd()))
}
