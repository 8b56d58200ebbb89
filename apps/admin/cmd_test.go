package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tayariapp/tayari/core/session"
	"github.com/tayariapp/tayari/core/user"
	"github.com/tayariapp/tayari/storage/database/inmem"
	"github.com/tayariapp/tayari/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)

	// start CLI
	return newTestCommandLine(usrRepo, inmemdb.NewSubmissionRepository(db))
}

func newTestCommandLine(usrRepo user.Repository, subRepo session.SubmissionRepository) *commandLine {
	cli := &commandLine{
		db:      &sqlx.DB{},
		usrRepo: usrRepo,
		subRepo: subRepo,
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

func run(t *testing.T, cli *commandLine, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli.root.SetOut(&out)
	cli.root.SetErr(&out)
	cli.root.SetArgs(args)
	err := cli.root.Execute()
	return out.String(), err
}

func Test_commandLine_migrate(t *testing.T) {
	origGooseRunFunc := gooseRunFunc
	defer func() { gooseRunFunc = origGooseRunFunc }()

	var gotCommand string
	var gotArgs []string
	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		gotCommand = command
		gotArgs = args
		switch command {
		case "up", "down", "redo", "reset", "status", "version":
			return nil
		default:
			return fmt.Errorf("%q: no such command", command)
		}
	}

	tests := []struct {
		name       string
		args       []string
		wantErrStr string
	}{
		{name: "no subcommand", args: []string{"migrate"}, wantErrStr: "requires at least 1 arg(s), only received 0"},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: `"lol": no such command`},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "extra args forwarded", args: []string{"migrate", "up", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setup(t)
			_, err := run(t, cli, tt.args...)
			if tt.wantErrStr != "" {
				if err == nil || err.Error() != tt.wantErrStr {
					t.Fatalf("cli error = %v; wantErrStr %s", err, tt.wantErrStr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli error = %v", err)
			}
			if gotCommand != tt.args[1] {
				t.Errorf("goose command = %s; want %s", gotCommand, tt.args[1])
			}
			if len(tt.args) > 2 && (len(gotArgs) == 0 || gotArgs[0] != tt.args[2]) {
				t.Errorf("goose args = %v; want %v", gotArgs, tt.args[2:])
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	origReadPasswordFunc := readPasswordFunc
	defer func() { readPasswordFunc = origReadPasswordFunc }()
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cr3t"), nil }

	ctx := context.Background()

	t.Run("create parent", func(t *testing.T) {
		cli := setup(t)
		if _, err := run(t, cli, "adduser", "--name", "Awe", "--email", "Awe@test.cd"); err != nil {
			t.Fatalf("cli error = %v", err)
		}

		usr, err := usrRepo.GetUserByEmail(ctx, "awe@test.cd")
		if err != nil {
			t.Fatalf("GetUserByEmail() failed: %v", err)
		}
		if usr.Name != "Awe" {
			t.Errorf("Name = %s; want Awe", usr.Name)
		}
		if usr.IsActive == nil || !*usr.IsActive {
			t.Error("user not activated")
		}
		if usr.IsAdmin() {
			t.Error("parent unexpectedly got the admin role")
		}
		if err := usr.CheckPassword("s3cr3t"); err != nil {
			t.Errorf("CheckPassword() failed: %v", err)
		}
	})

	t.Run("create admin", func(t *testing.T) {
		cli := setup(t)
		if _, err := run(t, cli, "adduser", "--email", "root@test.cd", "--admin"); err != nil {
			t.Fatalf("cli error = %v", err)
		}

		usr, err := usrRepo.GetUserByEmail(ctx, "root@test.cd")
		if err != nil {
			t.Fatalf("GetUserByEmail() failed: %v", err)
		}
		if !usr.IsAdmin() {
			t.Error("admin role not granted")
		}
	})

	t.Run("update existing", func(t *testing.T) {
		cli := setup(t)
		usr := testutil.CreateUser(t, usrRepo, "Old Name", "awe@test.cd", "oldpwd", nil, false)

		if _, err := run(t, cli, "adduser", "--name", "New Name", "--email", "awe@test.cd", "--admin"); err != nil {
			t.Fatalf("cli error = %v", err)
		}

		updated, err := usrRepo.GetUserByEmail(ctx, "awe@test.cd")
		if err != nil {
			t.Fatalf("GetUserByEmail() failed: %v", err)
		}
		if updated.ID != usr.ID {
			t.Errorf("ID changed on update: %s != %s", updated.ID, usr.ID)
		}
		if updated.Name != "New Name" {
			t.Errorf("Name = %s; want New Name", updated.Name)
		}
		if updated.IsActive == nil || !*updated.IsActive {
			t.Error("user not re-activated")
		}
		if !updated.IsAdmin() {
			t.Error("admin role not granted on update")
		}
	})

	t.Run("email required", func(t *testing.T) {
		cli := setup(t)
		if _, err := run(t, cli, "adduser", "--name", "Awe"); err == nil {
			t.Fatal("expected a missing-flag error")
		}
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	origReadPasswordFunc := readPasswordFunc
	defer func() { readPasswordFunc = origReadPasswordFunc }()
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("newpwd"), nil }

	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		cli := setup(t)
		if _, err := run(t, cli, "resetpassword", "--email", "lol@test.cd"); err != user.ErrNotFound {
			t.Fatalf("cli error = %v; want %v", err, user.ErrNotFound)
		}
	})

	t.Run("reset", func(t *testing.T) {
		cli := setup(t)
		usr := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", "oldpwd", nil, true)

		if _, err := run(t, cli, "resetpassword", "--email", "Awe@test.cd"); err != nil {
			t.Fatalf("cli error = %v", err)
		}

		updated, err := usrRepo.GetUserByID(ctx, usr.ID)
		if err != nil {
			t.Fatalf("GetUserByID() failed: %v", err)
		}
		if bytes.Equal(updated.PasswordHash, usr.PasswordHash) {
			t.Error("failed to update new password")
		}
		if err := updated.CheckPassword("newpwd"); err != nil {
			t.Errorf("CheckPassword() failed: %v", err)
		}
	})

	t.Run("empty password", func(t *testing.T) {
		cli := setup(t)
		testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", "oldpwd", nil, true)

		readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }
		defer func() { readPasswordFunc = func(fd int) ([]byte, error) { return []byte("newpwd"), nil } }()

		if _, err := run(t, cli, "resetpassword", "--email", "awe@test.cd"); err == nil {
			t.Fatal("expected an empty-password error")
		}
	})
}

func Test_commandLine_submissions(t *testing.T) {
	ctx := context.Background()

	newSubmission := func(t *testing.T, cli *commandLine, userID, studentName string) {
		t.Helper()
		sess := session.NewSession()
		sess.StudentInfo.Name = studentName
		now := time.Now().UTC()
		_, err := cli.subRepo.UpsertSubmission(ctx, session.Submission{
			ID:          userID + "-sub",
			UserID:      userID,
			StudentName: studentName,
			Session:     sess,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			t.Fatalf("UpsertSubmission() failed: %v", err)
		}
	}

	cli := setup(t)
	usr1 := testutil.CreateUser(t, usrRepo, "Parent One", "one@test.cd", "pwd", nil, true)
	usr2 := testutil.CreateUser(t, usrRepo, "Parent Two", "two@test.cd", "pwd", nil, true)
	newSubmission(t, cli, usr1.ID, "Alex")
	newSubmission(t, cli, usr2.ID, "Sam")
	newSubmission(t, cli, "gone", "Orphan") // submitter account deleted

	t.Run("all", func(t *testing.T) {
		out, err := run(t, cli, "submissions")
		if err != nil {
			t.Fatalf("cli error = %v", err)
		}
		for _, want := range []string{"Alex", "one@test.cd", "Sam", "two@test.cd", "Orphan", "Unknown", "3 submission(s)"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("search by student name", func(t *testing.T) {
		out, err := run(t, cli, "submissions", "--search", "alex")
		if err != nil {
			t.Fatalf("cli error = %v", err)
		}
		if !strings.Contains(out, "Alex") || strings.Contains(out, "Sam") {
			t.Errorf("unexpected filtering:\n%s", out)
		}
		if !strings.Contains(out, "1 submission(s)") {
			t.Errorf("output missing count:\n%s", out)
		}
	})

	t.Run("search by email", func(t *testing.T) {
		out, err := run(t, cli, "submissions", "--search", "two@")
		if err != nil {
			t.Fatalf("cli error = %v", err)
		}
		if !strings.Contains(out, "Sam") || strings.Contains(out, "Alex") {
			t.Errorf("unexpected filtering:\n%s", out)
		}
	})
}
