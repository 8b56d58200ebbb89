package main

import (
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/session"
	"github.com/tayariapp/tayari/core/user"
	"github.com/tayariapp/tayari/storage/database/sqlx"
)

var readPasswordFunc = term.ReadPassword // mockable

type commandLine struct {
	root    *cobra.Command
	db      *sqlx.DB
	conf    *core.Config
	usrRepo user.Repository
	subRepo session.SubmissionRepository
}

func newCommandLine(db *sqlx.DB, conf *core.Config) *commandLine {
	cli := &commandLine{
		db:      db,
		conf:    conf,
		usrRepo: sqlxrepos.NewUserRepository(db),
		subRepo: sqlxrepos.NewSubmissionRepository(db),
	}

	cli.root = newRootCmd()
	cli.root.AddCommand(
		cli.addUserCmd(),
		cli.resetPasswordCmd(),
		cli.migrateCmd(),
		cli.submissionsCmd(),
	)
	return cli
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tayari-admin",
		Short:         "Tayari administration commands",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
}

func (cli *commandLine) Execute() error {
	return cli.root.Execute()
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}
	return string(pwd), nil
}
