package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

func (cli *commandLine) analyze(query string) error {
	reply := cli.assistantSvc.Reply(context.Background(), query, core.Requester{})

	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(reply), "printing reply")
}
