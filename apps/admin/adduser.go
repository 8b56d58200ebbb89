package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var name, email string
	var isAdmin bool

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create or update a user account. The password is prompted next.",
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword()
			if err != nil {
				return err
			}
			return cli.addUser(cmd.Context(), name, email, pwd, isAdmin)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "The user's full name.")
	cmd.Flags().StringVar(&email, "email", "", "The user's email.")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Grant the admin role.")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// addUser updates or creates a user.User
func (cli *commandLine) addUser(ctx context.Context, name, email, pwd string, isAdmin bool) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Name:  name,
			Email: email,
			Roles: []string{user.RoleParent},
		}
	}
	if name != "" {
		usr.Name = name
	}
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	usr.SetActive(true)
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.usrRepo.UpdateOrCreateUser(ctx, usr); err != nil {
		return err
	}
	return nil
}
