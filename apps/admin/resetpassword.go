package main

import (
	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/user"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrSvc.GetByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{
		Name:            usr.Name,
		Email:           usr.Email,
		Role:            usr.Role,
		Avatar:          usr.Avatar,
		Department:      usr.Department,
		Position:        usr.Position,
		JoinDate:        usr.JoinDate,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	return err
}
