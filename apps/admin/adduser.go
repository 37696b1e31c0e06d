package main

import (
	"context"
	"fmt"

	"github.com/mundoacuatico/backend/core/staff"
)

// addUser creates a staff.User, or reactivates it with a new password if the username exists.
func (cli *commandLine) addUser(uname, name, role, pwd string) error {
	r, ok := staff.ParseRole(role)
	if !ok {
		return fmt.Errorf("invalid role %q: must be one of %v", role, staff.Roles)
	}

	usr, created, err := cli.staffSvc.CreateOrReactivate(context.Background(), staff.NewUser{
		Username: uname,
		Name:     name,
		Password: pwd,
		Role:     r,
	})
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("user %q created (%s)\n", usr.Username, usr.Role)
	} else {
		fmt.Printf("user %q reactivated (%s)\n", usr.Username, usr.Role)
	}
	return nil
}
