package main

import (
	"github.com/spf13/cobra"
	"github.com/trezcool/goose"

	"github.com/tayariapp/tayari/fs"
)

var gooseRunFunc = goose.RunFS // mockable

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run database migrations (up, down, status, ...).",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gooseRunFunc(args[0], cli.db.DB, appfs.FS, "migrations", args[1:]...)
		},
	}
}
