package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kombee/portal/core/access"
	"github.com/kombee/portal/core/assessment"
	"github.com/kombee/portal/core/progress"
)

type assessmentApi struct {
	engine   *assessment.Engine
	tracker  *progress.Tracker
	validate *validator.Validate
}

func registerAssessmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := assessmentApi{
		engine:   deps.App.Assessments,
		tracker:  deps.App.Progress,
		validate: deps.Validate,
	}

	ag := g.Group("/assessments", jwt, permissionMiddleware(access.PermTakeAssessments))
	ag.GET("/:id", api.retrieve)
	ag.POST("/:id/start", api.start)
	ag.POST("/answers", api.answer)
	ag.POST("/tick", api.tick)
	ag.POST("/submit", api.submit)
	ag.POST("/reset", api.reset)
	ag.GET("/state", api.state)
}

func (api *assessmentApi) retrieve(ctx echo.Context) error {
	ass, err := api.engine.Fetch(ctx.Param("id"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "fetching assessment"), assessment.ErrAssessmentNotFound)
	}
	return ctx.JSON(http.StatusOK, ass)
}

func (api *assessmentApi) start(ctx echo.Context) error {
	ass, err := api.engine.Fetch(ctx.Param("id"))
	if err != nil {
		return httpNotFound(errors.Wrap(err, "fetching assessment"), assessment.ErrAssessmentNotFound)
	}

	api.engine.Start(ass)
	return ctx.JSON(http.StatusOK, newAssessmentStateResponse(api.engine.State()))
}

func (api *assessmentApi) answer(ctx echo.Context) error {
	var data AnswerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnswerRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	if err := api.engine.Answer(data.QuestionID, data.SelectedOptionID); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return ctx.JSON(http.StatusOK, newAssessmentStateResponse(api.engine.State()))
}

func (api *assessmentApi) tick(ctx echo.Context) error {
	var data TickRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TickRequest")
	}

	api.engine.Tick(data.RemainingSeconds)
	return ctx.JSON(http.StatusOK, newAssessmentStateResponse(api.engine.State()))
}

func (api *assessmentApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	st := api.engine.State()
	var courseID string
	if st.Current != nil {
		courseID = st.Current.CourseID
	}

	result, err := api.engine.Submit()
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	// fold the result into the user's course progress when one is active
	if courseID != "" {
		answers := make([]progress.Answer, 0, len(result.Answers))
		for _, ans := range result.Answers {
			answers = append(answers, progress.Answer{
				QuestionID:       ans.QuestionID,
				SelectedOptionID: ans.SelectedOptionID,
				IsCorrect:        ans.IsCorrect,
			})
		}
		_, err = api.tracker.RecordAssessmentResult(claims.Subject, courseID, progress.AssessmentResult{
			AssessmentID: result.AssessmentID,
			Score:        result.Score,
			Passed:       result.Passed,
			CompletedAt:  result.CompletedAt,
			TimeSpent:    result.TimeSpent,
			Answers:      answers,
		})
		if err != nil && errors.Cause(err) != progress.ErrNoActiveProgress {
			return errors.Wrap(err, "recording assessment result")
		}
	}

	return ctx.JSON(http.StatusOK, result)
}

func (api *assessmentApi) reset(ctx echo.Context) error {
	api.engine.Reset()
	return ctx.JSON(http.StatusOK, newAssessmentStateResponse(api.engine.State()))
}

func (api *assessmentApi) state(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, newAssessmentStateResponse(api.engine.State()))
}

type (
	AnswerRequest struct {
		QuestionID       string `json:"question_id" validate:"required"`
		SelectedOptionID string `json:"selected_option_id" validate:"required"`
	}

	TickRequest struct {
		RemainingSeconds int `json:"remaining_seconds"`
	}

	AssessmentStateResponse struct {
		Current          *assessment.Assessment  `json:"current,omitempty"`
		Answers          []assessment.UserAnswer `json:"answers"`
		RemainingSeconds *int                    `json:"remaining_seconds,omitempty"`
		Phase            assessment.Phase        `json:"phase"`
		Result           *assessment.Result      `json:"result,omitempty"`
		Loading          bool                    `json:"loading"`
		Error            string                  `json:"error,omitempty"`
	}
)

func newAssessmentStateResponse(st assessment.State) AssessmentStateResponse {
	resp := AssessmentStateResponse{
		Current:          st.Current,
		Answers:          st.Answers,
		RemainingSeconds: st.RemainingSeconds,
		Phase:            st.Phase,
		Result:           st.Result,
		Loading:          st.Loading,
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	return resp
}
