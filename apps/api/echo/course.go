package echoapi

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/form"
	"github.com/collabrate/collabrate/core/user"
)

type courseApi struct {
	svc        *course.Service
	formSvc    *form.Service
	usrSvc     *user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{
		svc:        deps.CourseSvc,
		formSvc:    deps.FormSvc,
		usrSvc:     deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	professor := professorMiddleware(api.usrSvc)
	courseAccess := courseAccessMiddleware(api.usrSvc, api.svc)

	cg := g.Group("/courses", jwt)
	cg.POST("", api.create, professor)
	cg.GET("", api.query, professor)
	cg.POST("/join", api.join)

	// detail endpoints; access is checked once here
	dg := cg.Group("/:join_code", courseAccess)
	dg.GET("", api.retrieve)

	dg.GET("/teams", api.queryTeams)
	dg.POST("/teams", api.createTeam, professor)
	dg.DELETE("/teams/:id", api.destroyTeam, professor)

	dg.GET("/forms", api.queryForms)

	// form creation rejects non-professors before looking at the course
	fg := cg.Group("/:join_code/forms/create", professor, courseAccess)
	fg.GET("", api.newForm)
	fg.POST("", api.createForm)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	crs, err := api.svc.Create(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	courses, err := api.svc.QueryByProfessor(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

type JoinCourseRequest struct {
	JoinCode string `json:"join_code" validate:"required,len=6"`
}

func (api *courseApi) join(ctx echo.Context) error {
	var data JoinCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to JoinCourseRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if !usr.IsStudent() {
		return echo.NewHTTPError(http.StatusForbidden, "only students can join courses")
	}

	reqCtx := ctx.Request().Context()
	crs, err := api.svc.GetByJoinCode(reqCtx, data.JoinCode)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by join code")
	}

	if err = api.svc.EnrollStudents(reqCtx, crs.JoinCode, usr.ID); err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) queryTeams(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return err
	}

	teams, err := api.svc.QueryTeams(ctx.Request().Context(), crs.JoinCode)
	if err != nil {
		return errors.Wrap(err, "querying teams")
	}
	return ctx.JSON(http.StatusOK, teams)
}

func (api *courseApi) createTeam(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return err
	}

	var data course.NewTeam
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeam")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	tm, err := api.svc.CreateTeam(ctx.Request().Context(), crs, data)
	if err != nil {
		return errors.Wrap(err, "creating team")
	}
	return ctx.JSON(http.StatusCreated, tm)
}

func (api *courseApi) destroyTeam(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return err
	}

	teamID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	if err = api.svc.DeleteTeam(ctx.Request().Context(), crs, teamID); err != nil {
		if errors.Cause(err) == course.ErrTeamNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting team")
	}
	return ctx.NoContent(http.StatusNoContent)
}
