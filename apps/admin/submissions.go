package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tayariapp/tayari/core"
)

func (cli *commandLine) submissionsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List form submissions, most recently updated first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := cli.subRepo.QueryAllSubmissions(cmd.Context())
			if err != nil {
				return err
			}
			users, err := cli.usrRepo.QueryAllUsers(cmd.Context())
			if err != nil {
				return err
			}
			emails := make(map[string]string, len(users))
			for _, usr := range users {
				emails[usr.ID] = usr.Email
			}

			search = core.CleanString(search)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTUDENT\tEMAIL\tUPDATED")
			var count int
			for _, sub := range subs {
				email := emails[sub.UserID]
				if email == "" {
					email = "Unknown"
				}
				if search != "" &&
					!core.ContainsFold(sub.StudentName, search) &&
					!core.ContainsFold(email, search) {
					continue
				}
				count++
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sub.ID, sub.StudentName, email, sub.UpdatedAt.Format("2006-01-02 15:04"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d submission(s)\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Filter on student name or submitter email.")
	return cmd
}
