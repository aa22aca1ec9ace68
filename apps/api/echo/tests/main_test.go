package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	echoapi "github.com/kombee/portal/apps/api/echo"
	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/auth"
	"github.com/kombee/portal/core/user"
	"github.com/kombee/portal/portal"
	logsvc "github.com/kombee/portal/services/logger"
	"github.com/kombee/portal/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

var (
	errMissingToken     = httpErr{Error: "missing or malformed jwt"}
	errPermissionDenied = httpErr{Error: "permission denied"}
	errNotFound         = httpErr{Error: "not found"}
)

func newTestServer(t *testing.T) (*echoapi.Server, *portal.App, *core.Config) {
	t.Helper()

	app, conf := testutil.NewApp(t)
	conf.Debug = false // error responses as served in production

	validate, translator := core.NewValidator()
	srv := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
		App:            app,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return srv, app, conf
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getUser(t *testing.T, app *portal.App, email string) user.User {
	t.Helper()
	usr, err := app.Users.GetByEmail(email)
	require.NoError(t, err)
	return usr
}

func getToken(t *testing.T, conf *core.Config, usr user.User) string {
	t.Helper()
	token, err := auth.GenerateToken(auth.NewUserClaims(usr, conf), conf)
	require.NoError(t, err)
	return token
}

func getTokenWithOrigIat(t *testing.T, conf *core.Config, usr user.User, origIat int64) string {
	t.Helper()
	token, err := auth.GenerateToken(auth.NewUserClaims(usr, conf, origIat), conf)
	require.NoError(t, err)
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func checkErrBody(t *testing.T, rec *httptest.ResponseRecorder, want httpErr) {
	t.Helper()
	var got httpErr
	decodeBody(t, rec, &got)
	require.Equal(t, want, got)
}
