package main

import (
	"errors"

	"github.com/pressly/goose/v3"

	appfs "github.com/kombee/portal/fs"
)

var errNoDatabase = errors.New("no database configured")

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}

	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return goose.Run(args[0], cli.db.DB, "migrations", arguments...)
}
