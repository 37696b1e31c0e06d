package main

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/tests"
)

var staffRepo staff.Repository

func setup(t *testing.T) *commandLine {
	staffRepo = testutil.NewRepos().Staff
	return &commandLine{
		db:       &sql.DB{}, // never used: migrateFunc is mocked
		staffSvc: staff.NewService(staffRepo, core.NewValidator()),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string   // typed at the prompt
	wantErr error
	check   func(t *testing.T, err error)
}

func (cli *commandLine) runTests(t *testing.T, tests []cliTest) {
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			readPasswordFunc = func(int) ([]byte, error) { return []byte(tt.pwd), nil }

			err := cli.run(append([]string{"admin"}, tt.args...))
			switch {
			case tt.check != nil:
				tt.check(t, err)
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var gotCmd string
	var gotArgs []string
	migrateFunc = func(_ *sql.DB, command string, args ...string) error {
		gotCmd, gotArgs = command, args
		return nil
	}

	cli.runTests(t, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "up", args: []string{"migrate", "up"}},
	})
	assert.Equal(t, "up", gotCmd)
	assert.Empty(t, gotArgs)

	cli.runTests(t, []cliTest{{name: "up-to", args: []string{"migrate", "up-to", "2"}}})
	assert.Equal(t, "up-to", gotCmd)
	assert.Equal(t, []string{"2"}, gotArgs)

	cli.db = nil
	cli.runTests(t, []cliTest{{name: "in-memory store", args: []string{"migrate", "up"}, wantErr: errNoDatabase}})
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()
	gone := testutil.CreateStaff(t, staffRepo, "gone", "", staff.RoleEditor, false)

	cli.runTests(t, []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no name", args: []string{"adduser", "-username", "carla"}, pwd: "Pileta#2024", wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "carla", "-name", "Carla"}, wantErr: errHelp},
		{
			name: "unknown role", args: []string{"adduser", "-username", "carla", "-name", "Carla", "-role", "Owner"}, pwd: "Pileta#2024",
			check: func(t *testing.T, err error) { assert.EqualError(t, err, `invalid role "Owner": must be one of [Admin Editor]`) },
		},
		{
			name: "weak password", args: []string{"adduser", "-username", "carla", "-name", "Carla"}, pwd: "abc",
			check: func(t *testing.T, err error) { assert.True(t, core.IsValidation(err), err) },
		},
		{name: "created", args: []string{"adduser", "-username", "Carla", "-name", "Carla Gómez"}, pwd: "Pileta#2024"},
		{name: "reactivated", args: []string{"adduser", "-username", "gone", "-name", "De vuelta", "-role", "Admin"}, pwd: "Pileta#2024"},
	})

	usr, err := staffRepo.GetUserByUsername(ctx, "carla")
	require.NoError(t, err)
	assert.Equal(t, staff.RoleAdmin, usr.Role)
	assert.True(t, usr.IsActive())
	assert.NoError(t, usr.CheckPassword("Pileta#2024"))

	usr, err = staffRepo.GetUser(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, "De vuelta", usr.Name)
	assert.Equal(t, staff.RoleAdmin, usr.Role)
	assert.True(t, usr.IsActive())
	assert.NoError(t, usr.CheckPassword("Pileta#2024"))
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateStaff(t, staffRepo, "ana", "Corchera#1", staff.RoleEditor, true)

	cli.runTests(t, []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "ana"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "Pileta#2024", wantErr: staff.ErrNotFound},
		{
			name: "weak password", args: []string{"resetpassword", "-username", "ana"}, pwd: "      ",
			check: func(t *testing.T, err error) { assert.True(t, core.IsValidation(err), err) },
		},
		{name: "reset", args: []string{"resetpassword", "-username", "ANA"}, pwd: "Pileta#2024"},
	})

	refreshed, err := staffRepo.GetUser(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.NoError(t, refreshed.CheckPassword("Pileta#2024"))
	assert.Error(t, refreshed.CheckPassword("Corchera#1"))
}
