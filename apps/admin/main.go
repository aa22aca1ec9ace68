package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/user"
	emailsvc "github.com/kombee/portal/services/email"
	"github.com/kombee/portal/storage/database"
	fixturedb "github.com/kombee/portal/storage/fixture"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// users live in Postgres when one is configured, fixtures otherwise
	var db *sqlx.DB
	var usrRepo user.Repository
	if conf.Database.IsSet() {
		db, err = database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()
		errAndDie(db.Ping())
		usrRepo = database.NewUserRepository(db)
	} else {
		fdb, err := fixturedb.Open(conf)
		errAndDie(err)
		usrRepo = fixturedb.NewUserRepository(fdb)
	}

	// start CLI
	cli := commandLine{
		db:     db,
		usrSvc: user.NewService(usrRepo, emailsvc.NewConsoleService(conf), conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
