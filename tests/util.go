// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/access"
	"github.com/kombee/portal/core/user"
	"github.com/kombee/portal/portal"
	emailsvc "github.com/kombee/portal/services/email"
	kvstore "github.com/kombee/portal/storage/kv"
)

// NewApp builds a fixture-backed App with zero source latency, an in-memory
// session store and a synchronous console email mock.
func NewApp(t *testing.T) (*portal.App, *core.Config) {
	t.Helper()

	conf := core.NewTestConfig()
	app, err := portal.New(conf, portal.Deps{
		SessionStore: kvstore.NewMemoryStore(),
		MailSvc:      emailsvc.NewConsoleServiceMock(conf),
	})
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	return app, conf
}

// CreateUser inserts a user directly through the repository.
func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email string,
	role access.Role,
	pwd string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        "test-" + core.CleanString(email, true),
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
