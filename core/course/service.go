package course

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
)

var (
	// errors
	ErrNotFound     = errors.New("course not found")
	ErrTeamNotFound = errors.New("team not found")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course, exec ...core.DBExecutor) (Course, error)
		JoinCodeExists(ctx context.Context, joinCode string, exec ...core.DBExecutor) (bool, error)
		GetCourseByJoinCode(ctx context.Context, joinCode string, exec ...core.DBExecutor) (Course, error)
		QueryCoursesByProfessor(ctx context.Context, professorID string, exec ...core.DBExecutor) ([]Course, error)
		EnrollStudents(ctx context.Context, joinCode string, studentIDs []string, exec ...core.DBExecutor) (int, error)
		SetStudentCount(ctx context.Context, joinCode string, count int, exec ...core.DBExecutor) error
		IsStudentEnrolled(ctx context.Context, joinCode, studentID string, exec ...core.DBExecutor) (bool, error)
		DeleteAllCourses(ctx context.Context, exec ...core.DBExecutor) (int64, error)
	}

	TeamRepository interface {
		CreateTeam(ctx context.Context, tm Team, exec ...core.DBExecutor) (Team, error)
		AddTeamStudents(ctx context.Context, teamID int, studentIDs []string, exec ...core.DBExecutor) error
		QueryTeamsByCourse(ctx context.Context, joinCode string, exec ...core.DBExecutor) ([]Team, error)
		GetTeamByID(ctx context.Context, id int, exec ...core.DBExecutor) (Team, error)
		DeleteTeam(ctx context.Context, id int, exec ...core.DBExecutor) error
		DeleteAllTeams(ctx context.Context, exec ...core.DBExecutor) (int64, error)
	}

	Service struct {
		repo     Repository
		teamRepo TeamRepository
	}
)

func NewService(repo Repository, teamRepo TeamRepository) *Service {
	return &Service{repo: repo, teamRepo: teamRepo}
}

// InitValidators registers course-specific validators and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation("semester", semesterValidation)
	core.RegisterCustomTranslation(validate, translator, "semester", "semester must be one of: Spring, Fall")
}

func semesterValidation(fl validator.FieldLevel) bool {
	sem := fl.Field().String()
	for _, s := range Semesters {
		if sem == s {
			return true
		}
	}
	return false
}

// Create persists a new course owned by the given professor, generating a
// unique join code and picking a display color when none was supplied.
func (svc *Service) Create(ctx context.Context, professorID string, nc NewCourse) (Course, error) {
	crs := Course{
		Code:        nc.Code,
		Title:       nc.Title,
		Semester:    nc.Semester,
		Year:        nc.Year,
		Color:       nc.Color,
		ProfessorID: professorID,
	}
	if crs.Color == "" {
		crs.Color = randomDisplayColor()
	}

	for {
		crs.JoinCode = GenerateJoinCode()
		exists, err := svc.repo.JoinCodeExists(ctx, crs.JoinCode)
		if err != nil {
			return Course{}, errors.Wrap(err, "checking join code")
		}
		if !exists {
			break
		}
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) GetByJoinCode(ctx context.Context, joinCode string) (Course, error) {
	return svc.repo.GetCourseByJoinCode(ctx, joinCode)
}

func (svc *Service) QueryByProfessor(ctx context.Context, professorID string) ([]Course, error) {
	return svc.repo.QueryCoursesByProfessor(ctx, professorID)
}

func (svc *Service) IsStudentEnrolled(ctx context.Context, joinCode, studentID string) (bool, error) {
	return svc.repo.IsStudentEnrolled(ctx, joinCode, studentID)
}

func (svc *Service) EnrollStudents(ctx context.Context, joinCode string, studentIDs ...string) error {
	if len(studentIDs) == 0 {
		return nil
	}
	added, err := svc.repo.EnrollStudents(ctx, joinCode, studentIDs)
	if err != nil {
		return errors.Wrap(err, "enrolling students")
	}
	if added == 0 {
		return nil
	}
	crs, err := svc.repo.GetCourseByJoinCode(ctx, joinCode)
	if err != nil {
		return err
	}
	return svc.repo.SetStudentCount(ctx, joinCode, crs.StudentCount+added)
}

func (svc *Service) CreateTeam(ctx context.Context, crs Course, nt NewTeam) (Team, error) {
	tm, err := svc.teamRepo.CreateTeam(ctx, Team{CourseJoinCode: crs.JoinCode, Name: nt.Name})
	if err != nil {
		return Team{}, err
	}
	if len(nt.StudentIDs) > 0 {
		if err = svc.teamRepo.AddTeamStudents(ctx, tm.ID, nt.StudentIDs); err != nil {
			return Team{}, errors.Wrap(err, "adding team students")
		}
		tm.StudentIDs = nt.StudentIDs
	}
	return tm, nil
}

func (svc *Service) QueryTeams(ctx context.Context, joinCode string) ([]Team, error) {
	return svc.teamRepo.QueryTeamsByCourse(ctx, joinCode)
}

// DeleteTeam removes a team after checking it belongs to the given course.
func (svc *Service) DeleteTeam(ctx context.Context, crs Course, teamID int) error {
	tm, err := svc.teamRepo.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if tm.CourseJoinCode != crs.JoinCode {
		return ErrTeamNotFound
	}
	return svc.teamRepo.DeleteTeam(ctx, teamID)
}
