package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kombee/portal/core/access"
	"github.com/kombee/portal/core/course"
	"github.com/kombee/portal/core/progress"
)

type progressApi struct {
	tracker *progress.Tracker
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := progressApi{tracker: deps.App.Progress}

	pg := g.Group("/progress", jwt)
	pg.GET("", api.listOwn)
	pg.GET("/courses/:courseID", api.retrieveCourse)
	pg.POST("/courses/:courseID/lessons/:lessonID/complete", api.completeLesson)

	// reporting endpoint for mentors and HR admins
	pg.GET("/users/:userID", api.listForUser, permissionMiddleware(access.PermViewAllProgress))
}

func (api *progressApi) listOwn(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	records, err := api.tracker.FetchUserProgress(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching user progress")
	}
	if records == nil {
		records = []progress.Progress{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *progressApi) listForUser(ctx echo.Context) error {
	records, err := api.tracker.FetchUserProgress(ctx.Param("userID"))
	if err != nil {
		return errors.Wrap(err, "fetching user progress")
	}
	if records == nil {
		records = []progress.Progress{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *progressApi) retrieveCourse(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	rec, err := api.tracker.FetchCourseProgress(claims.Subject, ctx.Param("courseID"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "fetching course progress"), progress.ErrProgressNotFound)
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *progressApi) completeLesson(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// make the course record current before mutating it
	if _, err = api.tracker.FetchCourseProgress(claims.Subject, ctx.Param("courseID")); err != nil {
		return httpNotFound(errors.Wrap(err, "fetching course progress"), progress.ErrProgressNotFound)
	}

	rec, err := api.tracker.MarkLessonCompleted(claims.Subject, ctx.Param("courseID"), ctx.Param("lessonID"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "marking lesson completed"),
			progress.ErrNoActiveProgress, course.ErrCourseNotFound)
	}
	return ctx.JSON(http.StatusOK, rec)
}
