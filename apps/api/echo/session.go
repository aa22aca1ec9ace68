package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/auth"
	"github.com/kombee/portal/core/user"
)

type authApi struct {
	manager  *auth.Manager
	usrSvc   *user.Service
	conf     *core.Config
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{
		manager:  deps.App.Auth,
		usrSvc:   deps.App.Users,
		conf:     deps.Conf,
		validate: deps.Validate,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.GET("/session", api.session)

	// authed endpoints
	tg := ag.Group("", jwt)
	tg.POST("/token-refresh", api.refreshToken)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.manager.Login(data.Email, data.Password)
	if err != nil {
		switch errors.Cause(err) {
		case auth.ErrInvalidCredentials:
			return core.NewValidationError(auth.ErrInvalidCredentials)
		case auth.ErrAccountDeactivated:
			return errAccountDeactivated
		}
		return errors.Wrap(err, "logging in")
	}

	return ctx.JSON(http.StatusOK, newSessionResponse(sess))
}

// session restores the persisted session; an absent or corrupt entry lands
// on anonymous with 200, never an error page.
func (api *authApi) session(ctx echo.Context) error {
	sess, err := api.manager.RestoreSession()
	if err != nil && errors.Cause(err) != auth.ErrNotAuthenticated {
		return errors.Wrap(err, "restoring session")
	}
	return ctx.JSON(http.StatusOK, newSessionResponse(sess))
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.manager.Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, newSessionResponse(api.manager.Session()))
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.usrSvc, api.conf)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	SessionResponse struct {
		Status          auth.Status `json:"status"`
		User            *user.User  `json:"user,omitempty"`
		Token           string      `json:"token,omitempty"`
		IsAuthenticated bool        `json:"is_authenticated"`
		Error           string      `json:"error,omitempty"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func newSessionResponse(sess auth.Session) SessionResponse {
	resp := SessionResponse{
		Status:          sess.Status,
		User:            sess.User,
		Token:           sess.Token,
		IsAuthenticated: sess.IsAuthenticated,
	}
	if sess.Err != nil {
		resp.Error = sess.Err.Error()
	}
	return resp
}
