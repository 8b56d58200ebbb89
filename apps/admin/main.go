package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/storage/database"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	wd, err := os.Getwd()
	errAndDie(err)
	conf, err := core.NewConfig(wd)
	errAndDie(err)
	core.SetupMail(conf)

	// set up DB
	var db *sqlx.DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err = database.Open(conf)
	errAndDie(err)
	defer db.Close()

	// start CLI
	cli := newCommandLine(db, conf)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
