package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	usr, err := cli.staffSvc.ResetPassword(context.Background(), uname, pwd)
	if err != nil {
		return err
	}
	fmt.Printf("password of %q updated\n", usr.Username)
	return nil
}
