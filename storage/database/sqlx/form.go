package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/form"
)

type courseFormRow struct {
	ID             int       `db:"id"`
	CourseJoinCode string    `db:"course_join_code"`
	Name           string    `db:"name"`
	SelfEvaluate   bool      `db:"self_evaluate"`
	NumLikert      int       `db:"num_likert"`
	NumOpenEnded   int       `db:"num_open_ended"`
	DueAt          null.Time `db:"due_at"`
	Color1         string    `db:"color_1"`
	Color2         string    `db:"color_2"`
	Color3         string    `db:"color_3"`
	Color4         string    `db:"color_4"`
	Color5         string    `db:"color_5"`
	CreatedAt      null.Time `db:"created_at"`
}

func (r courseFormRow) toDomain() form.CourseForm {
	return form.CourseForm{
		ID:             r.ID,
		CourseJoinCode: r.CourseJoinCode,
		Name:           r.Name,
		SelfEvaluate:   r.SelfEvaluate,
		NumLikert:      r.NumLikert,
		NumOpenEnded:   r.NumOpenEnded,
		DueAt:          r.DueAt,
		Color1:         r.Color1,
		Color2:         r.Color2,
		Color3:         r.Color3,
		Color4:         r.Color4,
		Color5:         r.Color5,
		CreatedAt:      r.CreatedAt.Time,
	}
}

type formRepository struct {
	exec core.DBExecutor
}

var _ form.Repository = (*formRepository)(nil) // interface compliance check

func NewFormRepository(exec core.DBExecutor) *formRepository {
	return &formRepository{exec: exec}
}

func (repo formRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

func (repo formRepository) CreateForm(ctx context.Context, cf form.CourseForm, exec ...core.DBExecutor) (form.CourseForm, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO course_form
		   (course_join_code, name, self_evaluate, num_likert, num_open_ended, due_at,
		    color_1, color_2, color_3, color_4, color_5, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		cf.CourseJoinCode, cf.Name, cf.SelfEvaluate, cf.NumLikert, cf.NumOpenEnded, cf.DueAt,
		cf.Color1, cf.Color2, cf.Color3, cf.Color4, cf.Color5, cf.CreatedAt,
	).Scan(&cf.ID)
	if err != nil {
		return form.CourseForm{}, errors.Wrap(err, "inserting course form")
	}
	return cf, nil
}

func (repo formRepository) QueryFormsByCourse(ctx context.Context, joinCode string, exec ...core.DBExecutor) ([]form.CourseForm, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx,
		`SELECT * FROM course_form WHERE course_join_code = $1 ORDER BY created_at`, joinCode)
	if err != nil {
		return nil, errors.Wrap(err, "querying course forms")
	}
	defer func() { _ = rows.Close() }()

	var rs []courseFormRow
	if err = sqlx.StructScan(rows, &rs); err != nil {
		return nil, errors.Wrap(err, "scanning course forms")
	}
	forms := make([]form.CourseForm, 0, len(rs))
	for _, r := range rs {
		forms = append(forms, r.toDomain())
	}
	return forms, nil
}

func (repo formRepository) FormNameExists(ctx context.Context, joinCode, name string, exec ...core.DBExecutor) (bool, error) {
	var exists bool
	err := repo.getExec(exec).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM course_form WHERE course_join_code = $1 AND name = $2)`,
		joinCode, name,
	).Scan(&exists)
	return exists, errors.Wrap(err, "checking form name")
}
