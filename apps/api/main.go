package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tayariapp/tayari/api/echo"
	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/session"
	"github.com/tayariapp/tayari/core/user"
	"github.com/tayariapp/tayari/services/email"
	"github.com/tayariapp/tayari/services/logger"
	"github.com/tayariapp/tayari/storage/database"
	"github.com/tayariapp/tayari/storage/database/sqlx"
	"github.com/tayariapp/tayari/storage/local"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	wd, err := os.Getwd()
	if err != nil {
		std.Fatalf("%+v", err)
	}
	conf, err := core.NewConfig(wd)
	if err != nil {
		std.Fatalf("%+v", err)
	}
	core.SetupMail(conf)
	user.Setup(conf)

	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))

	if err := run(conf, logger, std); err != nil {
		logger.Fatal("running app", err)
	}
}

func run(conf *core.Config, logger core.Logger, std *log.Logger) error {
	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		return err
	}
	db, err := database.Open(conf)
	if err != nil {
		return err
	}
	defer db.Close()
	if err = database.Migrate(db); err != nil {
		return err
	}

	// set up the local draft store
	drafts, err := localstore.Open(conf)
	if err != nil {
		return err
	}
	defer drafts.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrRepo := sqlxrepos.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo, mailSvc)
	sessSvc := session.NewService(drafts, sqlxrepos.NewSubmissionRepository(db), usrRepo)

	validate, translator := core.NewValidator()

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:           conf,
			UserSvc:        usrSvc,
			SessionSvc:     sessSvc,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },
		},
	)
	go app.Start()

	sig := <-shutdown
	std.Printf("%v: shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		return err
	}
	std.Print("shutdown complete")
	return nil
}
