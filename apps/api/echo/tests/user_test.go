package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kombee/portal/core/user"
	emailsvc "github.com/kombee/portal/services/email"
)

func Test_userApi_query(t *testing.T) {
	srv, app, conf := newTestServer(t)
	hrToken := getToken(t, conf, getUser(t, app, "priya.patel@kombee.com"))
	empToken := getToken(t, conf, getUser(t, app, "john.smith@kombee.com"))

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/users")
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		checkErrBody(t, rec, errMissingToken)
	})

	t.Run("manage permission required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users", empToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		checkErrBody(t, rec, errPermissionDenied)
	})

	t.Run("get all", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var users []user.User
		decodeBody(t, rec, &users)
		assert.Len(t, users, 5)
	})

	t.Run("filter by search", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users?search=sarah", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var users []user.User
		decodeBody(t, rec, &users)
		require.Len(t, users, 1)
		assert.Equal(t, "user2", users[0].ID)
	})

	t.Run("filter by role", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users?role=mentor&role=team_lead", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var users []user.User
		decodeBody(t, rec, &users)
		assert.Len(t, users, 2)
	})

	t.Run("filter no match", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users?search=nobody-here", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func Test_userApi_create(t *testing.T) {
	srv, app, conf := newTestServer(t)
	hrToken := getToken(t, conf, getUser(t, app, "priya.patel@kombee.com"))

	t.Run("success", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"name":             "Jane Doe",
			"email":            "jane.doe@kombee.com",
			"role":             "employee",
			"password":         "s3cr3t!",
			"password_confirm": "s3cr3t!",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/users", hrToken, body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
		var usr user.User
		decodeBody(t, rec, &usr)
		assert.NotEmpty(t, usr.ID)
		assert.Equal(t, "jane.doe@kombee.com", usr.Email)
		assert.True(t, usr.IsActive)
	})

	t.Run("duplicate email", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"name":             "Imposter",
			"email":            "john.smith@kombee.com",
			"role":             "employee",
			"password":         "s3cr3t!",
			"password_confirm": "s3cr3t!",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/users", hrToken, body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "email")
	})

	t.Run("password mismatch", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"name":             "Jane Two",
			"email":            "jane.two@kombee.com",
			"role":             "employee",
			"password":         "s3cr3t!",
			"password_confirm": "other",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/users", hrToken, body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"name":             "Jane Three",
			"email":            "jane.three@kombee.com",
			"role":             "superuser",
			"password":         "s3cr3t!",
			"password_confirm": "s3cr3t!",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/users", hrToken, body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_userApi_detail(t *testing.T) {
	srv, app, conf := newTestServer(t)
	hrToken := getToken(t, conf, getUser(t, app, "priya.patel@kombee.com"))
	empToken := getToken(t, conf, getUser(t, app, "john.smith@kombee.com"))

	t.Run("owner can retrieve self", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/user1", empToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var usr user.User
		decodeBody(t, rec, &usr)
		assert.Equal(t, "user1", usr.ID)
	})

	t.Run("non-manager gets 404 for others", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/user4", empToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
		checkErrBody(t, rec, errNotFound)
	})

	t.Run("manager can retrieve anyone", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/user1", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/nope", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"name": "John A. Smith", "position": "Senior Developer"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/user1", hrToken, body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var usr user.User
		decodeBody(t, rec, &usr)
		assert.Equal(t, "John A. Smith", usr.Name)
		assert.Equal(t, "john.smith@kombee.com", usr.Email, "blank fields keep their value")
	})

	t.Run("update requires manage permission", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"name": "Self Update"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/user1", empToken, body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func Test_userApi_destroy(t *testing.T) {
	srv, app, conf := newTestServer(t)
	hrToken := getToken(t, conf, getUser(t, app, "priya.patel@kombee.com"))

	t.Run("cannot delete self", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/user4", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		checkErrBody(t, rec, errPermissionDenied)
	})

	t.Run("success", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/user2", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/users/user2", hrToken)
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("multiple with self forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users?id=user1&id=user4", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("multiple", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users?id=user1&id=user3", hrToken)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/users", hrToken)
		srv.ServeHTTP(rec, req)
		var users []user.User
		decodeBody(t, rec, &users)
		assert.Len(t, users, 2)
	})
}

func Test_userApi_queryRoles(t *testing.T) {
	srv, app, conf := newTestServer(t)
	hrToken := getToken(t, conf, getUser(t, app, "priya.patel@kombee.com"))

	req, rec := newAuthRequest(http.MethodGet, "/v1/users/roles", hrToken)
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []struct {
		Name        string   `json:"name"`
		DisplayName string   `json:"display_name"`
		Permissions []string `json:"permissions"`
	}
	decodeBody(t, rec, &roles)
	require.Len(t, roles, 5)

	names := make(map[string]bool)
	for _, r := range roles {
		names[r.Name] = true
		assert.NotEmpty(t, r.DisplayName)
		assert.NotEmpty(t, r.Permissions)
	}
	for _, want := range []string{"employee", "intern", "mentor", "hr_admin", "team_lead"} {
		assert.True(t, names[want], want)
	}
}

func Test_userApi_passwordReset(t *testing.T) {
	srv, _, _ := newTestServer(t)
	emailsvc.ClearSentMessages()
	t.Cleanup(emailsvc.ClearSentMessages)

	t.Run("request sends email", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"email": "john.smith@kombee.com"})
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, emailsvc.SentMessages, 1)
		assert.Contains(t, emailsvc.SentMessages[0].Body, "password-reset?uid=")
	})

	t.Run("unknown email still succeeds", func(t *testing.T) {
		emailsvc.ClearSentMessages()
		body := marshalObj(t, map[string]string{"email": "ghost@kombee.com"})
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, emailsvc.SentMessages)
	})

	t.Run("confirm round trip", func(t *testing.T) {
		emailsvc.ClearSentMessages()
		body := marshalObj(t, map[string]string{"email": "john.smith@kombee.com"})
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, emailsvc.SentMessages, 1)

		_, query, ok := strings.Cut(emailsvc.SentMessages[0].Body, "password-reset?")
		require.True(t, ok)
		params := make(map[string]string)
		for _, kv := range strings.Split(strings.TrimSpace(query), "&") {
			k, v, _ := strings.Cut(kv, "=")
			params[k] = v
		}

		body = marshalObj(t, map[string]string{
			"uid":              params["uid"],
			"token":            params["token"],
			"password":         "brand-new",
			"password_confirm": "brand-new",
		})
		req, rec = newRequest(http.MethodPost, "/v1/users/password-reset-confirm", body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		// old password no longer works
		req, rec = newRequest(http.MethodPost, "/v1/auth/login",
			marshalObj(t, map[string]string{"email": "john.smith@kombee.com", "password": "password"}))
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		// new one does
		req, rec = newRequest(http.MethodPost, "/v1/auth/login",
			marshalObj(t, map[string]string{"email": "john.smith@kombee.com", "password": "brand-new"}))
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
