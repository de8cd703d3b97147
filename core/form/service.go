package form

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
)

var (
	// errors
	ErrNotFound   = errors.New("form not found")
	ErrNameExists = errors.New("a form with this name already exists for this course")
)

type (
	Repository interface {
		CreateForm(ctx context.Context, cf CourseForm, exec ...core.DBExecutor) (CourseForm, error)
		QueryFormsByCourse(ctx context.Context, joinCode string, exec ...core.DBExecutor) ([]CourseForm, error)
		FormNameExists(ctx context.Context, joinCode, name string, exec ...core.DBExecutor) (bool, error)
	}

	Service struct {
		repo Repository
		loc  *time.Location
	}
)

func NewService(repo Repository, loc *time.Location) *Service {
	return &Service{repo: repo, loc: loc}
}

// Create validates and persists a form definition for the given course.
// It either persists the fully resolved form or returns a rejection;
// it never partially persists.
func (svc *Service) Create(ctx context.Context, crs course.Course, nf NewCourseForm) (CourseForm, error) {
	cf, err := nf.Resolve(svc.loc)
	if err != nil {
		return CourseForm{}, err
	}

	// Uniqueness is pre-checked so a duplicate name surfaces as a validation
	// error rather than a storage integrity failure.
	exists, err := svc.repo.FormNameExists(ctx, crs.JoinCode, cf.Name)
	if err != nil {
		return CourseForm{}, errors.Wrap(err, "checking form name uniqueness")
	}
	if exists {
		return CourseForm{}, core.NewValidationError(ErrNameExists, core.FieldError{
			Field: "form_name",
			Error: ErrNameExists.Error(),
		})
	}

	cf.CourseJoinCode = crs.JoinCode
	cf.CreatedAt = time.Now().UTC()
	return svc.repo.CreateForm(ctx, cf)
}

func (svc *Service) QueryByCourse(ctx context.Context, joinCode string) ([]CourseForm, error) {
	return svc.repo.QueryFormsByCourse(ctx, joinCode)
}
