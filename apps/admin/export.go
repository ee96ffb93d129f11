package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/apps"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/export"
	sinksvc "github.com/trezcool/elimu/services/sink"
)

var stdin io.Reader = os.Stdin // mockable

type exportArgs struct {
	in     string
	format string
	title  string
	from   string
	to     string
	outDir string
}

func (cli *commandLine) export(args exportArgs) error {
	msgs, err := readMessages(args.in)
	if err != nil {
		return err
	}
	from, err := parseDate("from", args.from)
	if err != nil {
		return err
	}
	to, err := parseDate("to", args.to)
	if err != nil {
		return err
	}

	req := export.Request{
		Format:    export.Format(args.format),
		Title:     args.title,
		Messages:  msgs,
		StartDate: from,
		EndDate:   to,
	}
	if err = req.Validate(cli.validate); err != nil {
		return cli.argumentError(err)
	}
	if from.Valid || to.Valid {
		req.Messages = export.FilterMessagesByDateRange(req.Messages, from, to)
	}

	sink, err := sinksvc.NewDirSink(args.outDir)
	if err != nil {
		return err
	}

	var onProgress export.ProgressFunc
	if stdoutIsTerminal() {
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetWriter(cli.out),
			progressbar.OptionSetDescription("exporting "+req.Title),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()
		onProgress = func(percent float64) { _ = bar.Set(int(percent)) }
	}

	res := cli.exportSvc.ExportLargeChat(context.Background(), sink, req.Format, req.Messages, req.Title, core.Requester{}, onProgress)
	if !res.Success {
		return errors.New(res.Error)
	}
	fmt.Fprintf(cli.out, "exported %d messages to %s\n", len(req.Messages), sink.Path(res.Filename))
	return nil
}

// readMessages accepts a JSON array of messages or an object with a "messages" key.
func readMessages(path string) ([]export.Message, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading messages")
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var msgs []export.Message
		if err = json.Unmarshal(data, &msgs); err != nil {
			return nil, errors.Wrap(err, "decoding messages")
		}
		return msgs, nil
	}

	var payload struct {
		Messages []export.Message `json:"messages"`
	}
	if err = json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, "decoding messages")
	}
	return payload.Messages, nil
}

// parseDate reads an RFC3339 date or a plain YYYY-MM-DD (UTC midnight). Empty means unset.
func parseDate(name, s string) (null.Time, error) {
	s = core.CleanString(s)
	if s == "" {
		return null.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return null.TimeFrom(t), nil
		}
	}
	return null.Time{}, apps.NewArgumentError(name, "must be an RFC3339 date or YYYY-MM-DD")
}

// argumentError flattens validation errors into a single argument error, "field: message" sorted by field.
func (cli *commandLine) argumentError(err error) error {
	var (
		fldErrs  map[string]string
		vErrs    validator.ValidationErrors
		validErr *core.ValidationError
	)
	switch {
	case errors.As(err, &vErrs):
		fldErrs = core.TranslateValidationErrors(vErrs, cli.translator)
	case errors.As(err, &validErr) && validErr.FieldMap() != nil:
		fldErrs = validErr.FieldMap()
	default:
		return err
	}
	msgs := make([]string, 0, len(fldErrs))
	for fld, msg := range fldErrs {
		msgs = append(msgs, fld+": "+msg)
	}
	sort.Strings(msgs)
	return apps.NewArgumentError("", strings.Join(msgs, "; "))
}
