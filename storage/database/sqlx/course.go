package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
)

type courseRow struct {
	JoinCode     string      `db:"join_code"`
	Code         string      `db:"code"`
	Title        string      `db:"title"`
	Semester     string      `db:"semester"`
	Year         int         `db:"year"`
	Color        null.String `db:"color"`
	StudentCount int         `db:"student_count"`
	ProfessorID  null.String `db:"professor_id"`
}

func (r courseRow) toDomain() course.Course {
	return course.Course{
		JoinCode:     r.JoinCode,
		Code:         r.Code,
		Title:        r.Title,
		Semester:     r.Semester,
		Year:         r.Year,
		Color:        r.Color.String,
		StudentCount: r.StudentCount,
		ProfessorID:  r.ProfessorID.String,
	}
}

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{exec: exec}
}

func (repo courseRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course, exec ...core.DBExecutor) (course.Course, error) {
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO course (join_code, code, title, semester, year, color, student_count, professor_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		crs.JoinCode, crs.Code, crs.Title, crs.Semester, crs.Year,
		null.NewString(crs.Color, crs.Color != ""), crs.StudentCount,
		null.NewString(crs.ProfessorID, crs.ProfessorID != ""),
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo courseRepository) JoinCodeExists(ctx context.Context, joinCode string, exec ...core.DBExecutor) (bool, error) {
	var exists bool
	err := repo.getExec(exec).
		QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM course WHERE join_code = $1)`, joinCode).
		Scan(&exists)
	return exists, errors.Wrap(err, "checking join code")
}

func (repo courseRepository) GetCourseByJoinCode(ctx context.Context, joinCode string, exec ...core.DBExecutor) (course.Course, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx, `SELECT * FROM course WHERE join_code = $1`, joinCode)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	defer func() { _ = rows.Close() }()

	var rs []courseRow
	if err = sqlx.StructScan(rows, &rs); err != nil {
		return course.Course{}, errors.Wrap(err, "scanning course")
	}
	if len(rs) == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return rs[0].toDomain(), nil
}

func (repo courseRepository) QueryCoursesByProfessor(ctx context.Context, professorID string, exec ...core.DBExecutor) ([]course.Course, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx,
		`SELECT * FROM course WHERE professor_id = $1 ORDER BY join_code`, professorID)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	defer func() { _ = rows.Close() }()

	var rs []courseRow
	if err = sqlx.StructScan(rows, &rs); err != nil {
		return nil, errors.Wrap(err, "scanning courses")
	}
	courses := make([]course.Course, 0, len(rs))
	for _, r := range rs {
		courses = append(courses, r.toDomain())
	}
	return courses, nil
}

func (repo courseRepository) EnrollStudents(ctx context.Context, joinCode string, studentIDs []string, exec ...core.DBExecutor) (int, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}
	values := make([]string, 0, len(studentIDs))
	args := make([]interface{}, 0, len(studentIDs)+1)
	args = append(args, joinCode)
	for i, id := range studentIDs {
		values = append(values, fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, id)
	}
	res, err := repo.getExec(exec).ExecContext(ctx,
		fmt.Sprintf(
			`INSERT INTO course_student (course_join_code, student_id) VALUES %s ON CONFLICT DO NOTHING`,
			strings.Join(values, ","),
		),
		args...,
	)
	if err != nil {
		return 0, errors.Wrap(err, "enrolling students")
	}
	added, err := res.RowsAffected()
	return int(added), errors.Wrap(err, "counting enrolled students")
}

func (repo courseRepository) SetStudentCount(ctx context.Context, joinCode string, count int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE course SET student_count = $1 WHERE join_code = $2`, count, joinCode)
	return errors.Wrap(err, "setting student count")
}

func (repo courseRepository) IsStudentEnrolled(ctx context.Context, joinCode, studentID string, exec ...core.DBExecutor) (bool, error) {
	var exists bool
	err := repo.getExec(exec).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM course_student WHERE course_join_code = $1 AND student_id = $2)`,
		joinCode, studentID,
	).Scan(&exists)
	return exists, errors.Wrap(err, "checking enrollment")
}

func (repo courseRepository) DeleteAllCourses(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM course`)
	if err != nil {
		return 0, errors.Wrap(err, "deleting courses")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "deleting courses")
}
