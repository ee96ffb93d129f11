package main

import (
	"context"

	"github.com/trezcool/elimu/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

// migrate runs "COMMAND [ARGS]" against the history database.
func (cli *commandLine) migrate(args []string) error {
	command, rest := args[0], args[1:]
	return gooseRunFunc(context.Background(), cli.db.DB, cli.conf.Database.Engine, command, rest...)
}
