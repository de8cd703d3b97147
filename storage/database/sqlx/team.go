package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
)

type teamRow struct {
	ID             int    `db:"id"`
	CourseJoinCode string `db:"course_join_code"`
	Name           string `db:"name"`
}

func (r teamRow) toDomain() course.Team {
	return course.Team{
		ID:             r.ID,
		CourseJoinCode: r.CourseJoinCode,
		Name:           r.Name,
	}
}

type teamRepository struct {
	exec core.DBExecutor
}

var _ course.TeamRepository = (*teamRepository)(nil) // interface compliance check

func NewTeamRepository(exec core.DBExecutor) *teamRepository {
	return &teamRepository{exec: exec}
}

func (repo teamRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

func (repo teamRepository) CreateTeam(ctx context.Context, tm course.Team, exec ...core.DBExecutor) (course.Team, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO team (course_join_code, name) VALUES ($1, $2) RETURNING id`,
		tm.CourseJoinCode, tm.Name,
	).Scan(&tm.ID)
	if err != nil {
		return course.Team{}, errors.Wrap(err, "inserting team")
	}
	return tm, nil
}

func (repo teamRepository) AddTeamStudents(ctx context.Context, teamID int, studentIDs []string, exec ...core.DBExecutor) error {
	if len(studentIDs) == 0 {
		return nil
	}
	values := make([]string, 0, len(studentIDs))
	args := make([]interface{}, 0, len(studentIDs)+1)
	args = append(args, teamID)
	for i, id := range studentIDs {
		values = append(values, fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, id)
	}
	_, err := repo.getExec(exec).ExecContext(ctx,
		fmt.Sprintf(
			`INSERT INTO team_student (team_id, student_id) VALUES %s ON CONFLICT DO NOTHING`,
			strings.Join(values, ","),
		),
		args...,
	)
	return errors.Wrap(err, "adding team students")
}

func (repo teamRepository) QueryTeamsByCourse(ctx context.Context, joinCode string, exec ...core.DBExecutor) ([]course.Team, error) {
	e := repo.getExec(exec)
	rows, err := e.QueryContext(ctx, `SELECT * FROM team WHERE course_join_code = $1 ORDER BY id`, joinCode)
	if err != nil {
		return nil, errors.Wrap(err, "querying teams")
	}
	defer func() { _ = rows.Close() }()

	var rs []teamRow
	if err = sqlx.StructScan(rows, &rs); err != nil {
		return nil, errors.Wrap(err, "scanning teams")
	}

	teams := make([]course.Team, 0, len(rs))
	for _, r := range rs {
		tm := r.toDomain()
		if tm.StudentIDs, err = repo.teamStudentIDs(ctx, e, tm.ID); err != nil {
			return nil, err
		}
		teams = append(teams, tm)
	}
	return teams, nil
}

func (repo teamRepository) GetTeamByID(ctx context.Context, id int, exec ...core.DBExecutor) (course.Team, error) {
	e := repo.getExec(exec)
	rows, err := e.QueryContext(ctx, `SELECT * FROM team WHERE id = $1`, id)
	if err != nil {
		return course.Team{}, errors.Wrap(err, "getting team")
	}
	defer func() { _ = rows.Close() }()

	var rs []teamRow
	if err = sqlx.StructScan(rows, &rs); err != nil {
		return course.Team{}, errors.Wrap(err, "scanning team")
	}
	if len(rs) == 0 {
		return course.Team{}, course.ErrTeamNotFound
	}
	tm := rs[0].toDomain()
	if tm.StudentIDs, err = repo.teamStudentIDs(ctx, e, tm.ID); err != nil {
		return course.Team{}, err
	}
	return tm, nil
}

func (repo teamRepository) teamStudentIDs(ctx context.Context, exec core.DBExecutor, teamID int) ([]string, error) {
	rows, err := exec.QueryContext(ctx, `SELECT student_id FROM team_student WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, errors.Wrap(err, "querying team students")
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scanning team student")
		}
		ids = append(ids, id)
	}
	return ids, errors.Wrap(rows.Err(), "querying team students")
}

func (repo teamRepository) DeleteTeam(ctx context.Context, id int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM team WHERE id = $1`, id)
	return errors.Wrap(err, "deleting team")
}

func (repo teamRepository) DeleteAllTeams(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM team`)
	if err != nil {
		return 0, errors.Wrap(err, "deleting teams")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "deleting teams")
}
