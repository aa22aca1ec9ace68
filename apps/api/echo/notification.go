package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kombee/portal/core/notification"
)

type notificationApi struct {
	store *notification.Store
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := notificationApi{store: deps.App.Notifications}

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.list)
	ng.GET("/unread-count", api.unreadCount)
	ng.POST("/:id/read", api.markRead)
	ng.DELETE("", api.clear)
}

func (api *notificationApi) list(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	notifs, err := api.store.FetchUserNotifications(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching notifications")
	}
	if notifs == nil {
		notifs = []notification.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *notificationApi) unreadCount(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"unread": api.store.UnreadCount()})
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	notif, err := api.store.MarkRead(ctx.Param("id"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "marking notification read"), notification.ErrNotFound)
	}
	return ctx.JSON(http.StatusOK, notif)
}

func (api *notificationApi) clear(ctx echo.Context) error {
	api.store.Clear()
	return ctx.NoContent(http.StatusNoContent)
}
