package user

import (
	"testing"
	"time"

	"github.com/kombee/portal/core"
)

func TestMakeVerifyResetToken(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewService(nil, nil, conf)

	now := time.Now()
	usr := User{
		ID:        "user1",
		Name:      "T",
		Email:     "t@test.test",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		LastLogin: now,
	}
	_ = usr.SetPassword("pwd")

	validToken, err := svc.MakeResetToken(usr)
	if err != nil {
		t.Fatalf("MakeResetToken() failed: %v", err)
	}

	// generate an expired token
	dayLate := conf.PasswordResetTimeoutDelta + (24 * time.Hour)
	NowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken, err := svc.MakeResetToken(usr)
	if err != nil {
		t.Fatalf("MakeResetToken() failed: %v", err)
	}
	NowFunc = time.Now // reset

	tests := []struct {
		name    string
		usr     User
		token   string
		wantErr error
	}{
		{name: "no token", usr: usr, wantErr: errInvalidToken},
		{name: "invalid parts len", usr: usr, token: "lmaooolol", wantErr: errInvalidToken},
		{name: "invalid base32", usr: usr, token: "hahaha-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid timestamp", usr: usr, token: "NRXWY-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid token", usr: usr, token: "HE4TS-sigsig-sig", wantErr: errInvalidToken},
		{name: "expired token", usr: usr, token: expiredToken, wantErr: errTokenExpired},
		{name: "valid token", usr: usr, token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.VerifyResetToken(tt.usr, tt.token); err != tt.wantErr {
				t.Errorf("VerifyResetToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResetTokenInvalidatedByPasswordChange(t *testing.T) {
	svc := NewService(nil, nil, core.NewTestConfig())

	usr := User{ID: "user1", Name: "T", Email: "t@test.test"}
	_ = usr.SetPassword("old")

	token, err := svc.MakeResetToken(usr)
	if err != nil {
		t.Fatalf("MakeResetToken() failed: %v", err)
	}
	if err = svc.VerifyResetToken(usr, token); err != nil {
		t.Fatalf("VerifyResetToken() failed: %v", err)
	}

	_ = usr.SetPassword("new")
	if err = svc.VerifyResetToken(usr, token); err != errInvalidToken {
		t.Errorf("VerifyResetToken() error = %v, wantErr %v", err, errInvalidToken)
	}
}
