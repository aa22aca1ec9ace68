package main

import (
	"bytes"
	"testing"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/access"
	"github.com/kombee/portal/core/user"
	emailsvc "github.com/kombee/portal/services/email"
	fixturedb "github.com/kombee/portal/storage/fixture"
)

func setup(t *testing.T) (*commandLine, *user.Service) {
	t.Helper()

	conf := core.NewTestConfig()
	db, err := fixturedb.Open(conf)
	if err != nil {
		t.Fatalf("fixturedb.Open() failed: %v", err)
	}
	usrSvc := user.NewService(fixturedb.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)
	return &commandLine{usrSvc: usrSvc}, usrSvc
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func runCliTests(t *testing.T, cli *commandLine, tests []cliTest, onSuccess func(t *testing.T, tt cliTest)) {
	t.Helper()

	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				if tt.wantErr != nil || tt.wantErrStr != "" {
					t.Fatalf("cli.run() expected error, got nil")
				}
				if onSuccess != nil {
					onSuccess(t, tt)
				}
				return
			}
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
				}
			} else {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	}
	runCliTests(t, cli, tests, nil)
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "no database", args: []string{"migrate", "up"}, wantErr: errNoDatabase},
	}
	runCliTests(t, cli, tests, nil)
}

func Test_commandLine_addUser(t *testing.T) {
	cli, usrSvc := setup(t)

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "name but no email", args: []string{"adduser", "-name", "Jane"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"adduser", "-name", "Jane", "-email", "jane@kombee.com"}, wantErr: errHelp},
		{name: "invalid role", args: []string{"adduser", "-name", "Jane", "-email", "jane@kombee.com", "-role", "superuser"}, pwd: "s3cr3t", wantErr: errInvalidRole},
		{name: "create", args: []string{"adduser", "-name", "Jane Doe", "-email", "jane.doe@kombee.com"}, pwd: "s3cr3t"},
		{name: "update existing", args: []string{"adduser", "-name", "Sarah J.", "-email", "sarah.johnson@kombee.com", "-role", "mentor"}, pwd: "n3w-pwd"},
	}
	runCliTests(t, cli, tests, func(t *testing.T, tt cliTest) {
		switch tt.name {
		case "create":
			usr, err := usrSvc.GetByEmail("jane.doe@kombee.com")
			if err != nil {
				t.Fatalf("GetByEmail() failed: %v", err)
			}
			if usr.Role != access.RoleHRAdmin {
				t.Errorf("role = %v, want default %v", usr.Role, access.RoleHRAdmin)
			}
			if err = usr.CheckPassword("s3cr3t"); err != nil {
				t.Error("password not set")
			}
		case "update existing":
			usr, err := usrSvc.GetByEmail("sarah.johnson@kombee.com")
			if err != nil {
				t.Fatalf("GetByEmail() failed: %v", err)
			}
			if usr.Role != access.RoleMentor {
				t.Errorf("role = %v, want %v", usr.Role, access.RoleMentor)
			}
			if usr.Name != "Sarah J." {
				t.Errorf("name = %s, want Sarah J.", usr.Name)
			}
			if usr.Department != "Marketing" {
				t.Error("department not preserved")
			}
			if !usr.IsActive {
				t.Error("user not reactivated")
			}
			if err = usr.CheckPassword("n3w-pwd"); err != nil {
				t.Error("password not updated")
			}
		}
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, usrSvc := setup(t)

	usr, err := usrSvc.GetByEmail("john.smith@kombee.com")
	if err != nil {
		t.Fatalf("GetByEmail() failed: %v", err)
	}
	origHash := append([]byte(nil), usr.PasswordHash...)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "john.smith@kombee.com"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "ghost@kombee.com"}, pwd: "lol", wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", "John.Smith@kombee.com"}, pwd: "lmao"},
	}
	runCliTests(t, cli, tests, func(t *testing.T, tt cliTest) {
		if tt.name != "reset" {
			return
		}
		refreshed, err := usrSvc.GetByEmail("john.smith@kombee.com")
		if err != nil {
			t.Fatalf("GetByEmail() failed: %v", err)
		}
		if bytes.Equal(refreshed.PasswordHash, origHash) {
			t.Error("failed to update new password")
		}
		if refreshed.Name != usr.Name {
			t.Error("name not preserved")
		}
	})
}
