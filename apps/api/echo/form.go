package echoapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core/form"
)

func (api *courseApi) queryForms(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return err
	}

	forms, err := api.formSvc.QueryByCourse(ctx.Request().Context(), crs.JoinCode)
	if err != nil {
		return errors.Wrap(err, "querying forms")
	}
	if forms == nil {
		forms = []form.CourseForm{}
	}
	return ctx.JSON(http.StatusOK, forms)
}

// newForm returns what the form-creation page needs: the default palette and
// the forms already defined for the course.
func (api *courseApi) newForm(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return err
	}

	forms, err := api.formSvc.QueryByCourse(ctx.Request().Context(), crs.JoinCode)
	if err != nil {
		return errors.Wrap(err, "querying forms")
	}
	if forms == nil {
		forms = []form.CourseForm{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"course":         crs,
		"default_colors": form.DefaultColors(),
		"forms":          forms,
	})
}

// createForm handles the form-encoded submission. Fields stay raw strings so
// that defaulting and parsing happen in one place, in form.Resolve.
func (api *courseApi) createForm(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return err
	}

	req := ctx.Request()
	if err = req.ParseForm(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form body")
	}
	data := bindNewCourseForm(req.PostForm)

	if _, err = api.formSvc.Create(req.Context(), crs, data); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/v1/courses/"+crs.JoinCode)
}

// bindNewCourseForm distinguishes absent fields from blank ones; both resolve
// to defaults but the distinction keeps binding lossless.
func bindNewCourseForm(values url.Values) form.NewCourseForm {
	opt := func(key string) form.Optional {
		vals, ok := values[key]
		if !ok || len(vals) == 0 {
			return form.Optional{}
		}
		return form.Optional{Value: vals[0], Set: true}
	}

	nf := form.NewCourseForm{
		Name:         opt("form_name"),
		SelfEvaluate: values.Get("self_evaluate") != "",
		NumLikert:    opt("num_likert"),
		NumOpenEnded: opt("num_open_ended"),
		DueDatetime:  opt("due_datetime"),
	}
	for i := range nf.Colors {
		nf.Colors[i] = opt("color_" + strconv.Itoa(i+1))
	}
	return nf
}
