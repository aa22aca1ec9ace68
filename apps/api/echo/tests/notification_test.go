package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kombee/portal/core/notification"
)

func Test_notificationApi(t *testing.T) {
	srv, app, conf := newTestServer(t)
	token := getToken(t, conf, getUser(t, app, "john.smith@kombee.com"))

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/notifications")
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		checkErrBody(t, rec, errMissingToken)
	})

	t.Run("list newest first", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/notifications", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var notifs []notification.Notification
		decodeBody(t, rec, &notifs)
		require.Len(t, notifs, 3)
		assert.Equal(t, "notif3", notifs[0].ID)
		assert.Equal(t, "notif1", notifs[2].ID)
	})

	t.Run("unread count", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/notifications/unread-count", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]int
		decodeBody(t, rec, &body)
		assert.Equal(t, 2, body["unread"])
	})

	t.Run("mark read", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/notifications/notif1/read", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var notif notification.Notification
		decodeBody(t, rec, &notif)
		assert.True(t, notif.IsRead)

		req, rec = newAuthRequest(http.MethodGet, "/v1/notifications/unread-count", token)
		srv.ServeHTTP(rec, req)
		var body map[string]int
		decodeBody(t, rec, &body)
		assert.Equal(t, 1, body["unread"])
	})

	t.Run("mark read unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/notifications/nope/read", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
		checkErrBody(t, rec, errNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/notifications", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/notifications/unread-count", token)
		srv.ServeHTTP(rec, req)
		var body map[string]int
		decodeBody(t, rec, &body)
		assert.Zero(t, body["unread"])
	})
}
