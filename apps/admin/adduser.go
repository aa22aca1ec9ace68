package main

import (
	"errors"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/access"
	"github.com/kombee/portal/core/user"
)

var errInvalidRole = errors.New("invalid role")

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, role, pwd string) error {
	email = core.CleanString(email, true /* lower */)
	if !access.Role(role).Valid() {
		return errInvalidRole
	}

	usr, err := cli.usrSvc.GetByEmail(email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		_, err = cli.usrSvc.Create(user.NewUser{
			Name:            name,
			Email:           email,
			Role:            access.Role(role),
			Password:        pwd,
			PasswordConfirm: pwd,
		})
		return err
	}

	active := true
	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{
		Name:            name,
		Email:           email,
		Role:            access.Role(role),
		Avatar:          usr.Avatar,
		Department:      usr.Department,
		Position:        usr.Position,
		JoinDate:        usr.JoinDate,
		IsActive:        &active,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	return err
}
