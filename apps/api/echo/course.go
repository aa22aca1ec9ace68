package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kombee/portal/core/access"
	"github.com/kombee/portal/core/course"
)

type courseApi struct {
	catalog *course.Store
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{catalog: deps.App.Catalog}

	cg := g.Group("/courses", jwt, permissionMiddleware(access.PermViewCourses))
	cg.GET("", api.list)
	cg.GET("/:id", api.retrieve)
	cg.GET("/:id/modules/:moduleID", api.retrieveModule)
	cg.GET("/:id/modules/:moduleID/lessons/:lessonID", api.retrieveLesson)
	cg.GET("/state", api.state)
}

func (api *courseApi) list(ctx echo.Context) error {
	courses, err := api.catalog.FetchCourses()
	if err != nil {
		return errors.Wrap(err, "fetching courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.catalog.FetchCourse(ctx.Param("id"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "fetching course"), course.ErrCourseNotFound)
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) retrieveModule(ctx echo.Context) error {
	mod, err := api.catalog.FetchModule(ctx.Param("id"), ctx.Param("moduleID"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "fetching module"),
			course.ErrCourseNotFound, course.ErrModuleNotFound)
	}
	return ctx.JSON(http.StatusOK, mod)
}

func (api *courseApi) retrieveLesson(ctx echo.Context) error {
	lesson, err := api.catalog.FetchLesson(ctx.Param("id"), ctx.Param("moduleID"), ctx.Param("lessonID"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "fetching lesson"),
			course.ErrCourseNotFound, course.ErrModuleNotFound, course.ErrLessonNotFound)
	}
	return ctx.JSON(http.StatusOK, lesson)
}

// state exposes the catalog snapshot, navigation cursor included.
func (api *courseApi) state(ctx echo.Context) error {
	st := api.catalog.State()
	resp := CatalogStateResponse{
		Courses:       st.Courses,
		CurrentCourse: st.CurrentCourse,
		CurrentModule: st.CurrentModule,
		CurrentLesson: st.CurrentLesson,
		Loading:       st.Loading,
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	return ctx.JSON(http.StatusOK, resp)
}

type CatalogStateResponse struct {
	Courses       []course.Course `json:"courses"`
	CurrentCourse *course.Course  `json:"current_course,omitempty"`
	CurrentModule *course.Module  `json:"current_module,omitempty"`
	CurrentLesson *course.Lesson  `json:"current_lesson,omitempty"`
	Loading       bool            `json:"loading"`
	Error         string          `json:"error,omitempty"`
}
