package inmemdb

import (
	"context"
	"sort"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/form"
)

type formRepository struct {
	db *DB
}

var _ form.Repository = (*formRepository)(nil) // interface compliance check

func NewFormRepository(db *DB) *formRepository {
	return &formRepository{db: db}
}

func (repo *formRepository) CreateForm(ctx context.Context, cf form.CourseForm, exec ...core.DBExecutor) (form.CourseForm, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.formPKCount++
	cf.ID = repo.db.formPKCount
	repo.db.forms[cf.ID] = &cf
	return cf, nil
}

func (repo *formRepository) QueryFormsByCourse(ctx context.Context, joinCode string, exec ...core.DBExecutor) ([]form.CourseForm, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	forms := make([]form.CourseForm, 0)
	for _, cf := range repo.db.forms {
		if cf.CourseJoinCode == joinCode {
			forms = append(forms, *cf)
		}
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID < forms[j].ID })
	return forms, nil
}

func (repo *formRepository) FormNameExists(ctx context.Context, joinCode, name string, exec ...core.DBExecutor) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, cf := range repo.db.forms {
		if cf.CourseJoinCode == joinCode && cf.Name == name {
			return true, nil
		}
	}
	return false, nil
}
