package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	uname, email, pwd, userType string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Username:  uname,
		Email:     email,
		Type:      userType,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	code, title, semester string,
	year int,
	professorID string,
) course.Course {
	t.Helper()

	crs := course.Course{
		JoinCode:    course.GenerateJoinCode(),
		Code:        code,
		Title:       title,
		Semester:    semester,
		Year:        year,
		Color:       "#3498db",
		ProfessorID: professorID,
	}
	crs, err := repo.CreateCourse(context.Background(), crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func EnrollStudents(t *testing.T, repo course.Repository, crs course.Course, studentIDs ...string) {
	t.Helper()

	ctx := context.Background()
	added, err := repo.EnrollStudents(ctx, crs.JoinCode, studentIDs)
	if err != nil {
		t.Fatalf("EnrollStudents() failed: %v", err)
	}
	if err = repo.SetStudentCount(ctx, crs.JoinCode, crs.StudentCount+added); err != nil {
		t.Fatalf("EnrollStudents() failed: %v", err)
	}
}
