package echoapi

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/user"
)

const (
	loginPath        = "/login"
	contextCourseKey = "course"
)

var (
	errProfessorsOnly = "Access denied: Professors only."
	errNotCourseUser  = "You do not have permission to access this course."
)

// loginRequiredMiddleware authenticates requests via JWT; anonymous requests
// are redirected to the login page with a next param pointing back here.
func loginRequiredMiddleware() echo.MiddlewareFunc {
	jwtConf := appJWTConfig
	jwtConf.ErrorHandlerWithContext = func(err error, ctx echo.Context) error {
		next := url.QueryEscape(ctx.Request().RequestURI)
		return ctx.Redirect(http.StatusFound, loginPath+"?next="+next)
	}
	return middleware.JWTWithConfig(jwtConf)
}

func professorMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if !usr.IsProfessor() {
				return core.NewAccessDeniedError(errProfessorsOnly)
			}
			return next(ctx)
		}
	}
}

// courseAccessMiddleware resolves the join_code param and stores the Course in
// the context. Professors must own the course; students must be enrolled.
func courseAccessMiddleware(usrSvc *user.Service, crsSvc *course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, usrSvc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}

			crs, err := crsSvc.GetByJoinCode(ctx.Request().Context(), ctx.Param("join_code"))
			if err != nil {
				if errors.Cause(err) == course.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding course by join code")
			}

			if usr.IsProfessor() {
				if crs.ProfessorID != usr.ID {
					return core.NewAccessDeniedError(errNotCourseUser)
				}
			} else {
				enrolled, err := crsSvc.IsStudentEnrolled(ctx.Request().Context(), crs.JoinCode, usr.ID)
				if err != nil {
					return errors.Wrap(err, "checking enrollment")
				}
				if !enrolled {
					return core.NewAccessDeniedError(errNotCourseUser)
				}
			}

			ctx.Set(contextCourseKey, crs)
			return next(ctx)
		}
	}
}

func getContextCourse(ctx echo.Context) (course.Course, error) {
	if crs, ok := ctx.Get(contextCourseKey).(course.Course); ok {
		return crs, nil
	}
	return course.Course{}, errors.New("course object not found in echo.Context")
}
