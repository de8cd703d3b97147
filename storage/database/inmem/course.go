package inmemdb

import (
	"context"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/form"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course, exec ...core.DBExecutor) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.courses[crs.JoinCode] = &crs
	return crs, nil
}

func (repo *courseRepository) JoinCodeExists(ctx context.Context, joinCode string, exec ...core.DBExecutor) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	_, ok := repo.db.courses[joinCode]
	return ok, nil
}

func (repo *courseRepository) GetCourseByJoinCode(ctx context.Context, joinCode string, exec ...core.DBExecutor) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if crs, ok := repo.db.courses[joinCode]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryCoursesByProfessor(ctx context.Context, professorID string, exec ...core.DBExecutor) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0)
	for _, crs := range repo.db.courses {
		if crs.ProfessorID == professorID {
			courses = append(courses, *crs)
		}
	}
	return courses, nil
}

func (repo *courseRepository) EnrollStudents(ctx context.Context, joinCode string, studentIDs []string, exec ...core.DBExecutor) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	enrolled := make(map[string]bool, len(repo.db.enrollments[joinCode]))
	for _, id := range repo.db.enrollments[joinCode] {
		enrolled[id] = true
	}
	added := 0
	for _, id := range studentIDs {
		if !enrolled[id] {
			repo.db.enrollments[joinCode] = append(repo.db.enrollments[joinCode], id)
			enrolled[id] = true
			added++
		}
	}
	return added, nil
}

func (repo *courseRepository) SetStudentCount(ctx context.Context, joinCode string, count int, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if crs, ok := repo.db.courses[joinCode]; ok {
		crs.StudentCount = count
		return nil
	}
	return course.ErrNotFound
}

func (repo *courseRepository) IsStudentEnrolled(ctx context.Context, joinCode, studentID string, exec ...core.DBExecutor) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, id := range repo.db.enrollments[joinCode] {
		if id == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *courseRepository) DeleteAllCourses(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n := int64(len(repo.db.courses))
	repo.db.courses = make(map[string]*course.Course)
	repo.db.enrollments = make(map[string][]string)
	repo.db.forms = make(map[int]*form.CourseForm) // forms cascade with their course
	return n, nil
}
