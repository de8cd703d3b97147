package course_test

import (
	"context"
	"testing"

	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/user"
	inmemdb "github.com/collabrate/collabrate/storage/database/inmem"
	testutil "github.com/collabrate/collabrate/tests"
)

func setup() (*inmemdb.DB, *course.Service) {
	db := inmemdb.Open()
	svc := course.NewService(inmemdb.NewCourseRepository(db), inmemdb.NewTeamRepository(db))
	return db, svc
}

func TestService_Create(t *testing.T) {
	db, svc := setup()
	usrRepo := inmemdb.NewUserRepository(db)
	ctx := context.Background()

	prof := testutil.CreateUser(t, usrRepo, "prof", "prof@faculty.example.edu", "", user.TypeProfessor, true)

	crs, err := svc.Create(ctx, prof.ID, course.NewCourse{
		Code:     "CS101",
		Title:    "Intro to CS",
		Semester: course.SemesterFall,
		Year:     2026,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(crs.JoinCode) != 6 {
		t.Errorf("JoinCode = %q, want 6 characters", crs.JoinCode)
	}
	if crs.Color == "" {
		t.Error("Create() did not pick a display color")
	}
	if crs.ProfessorID != prof.ID {
		t.Errorf("ProfessorID = %q, want %q", crs.ProfessorID, prof.ID)
	}

	got, err := svc.GetByJoinCode(ctx, crs.JoinCode)
	if err != nil {
		t.Fatalf("GetByJoinCode() error = %v", err)
	}
	if got.Code != crs.Code {
		t.Errorf("GetByJoinCode().Code = %q, want %q", got.Code, crs.Code)
	}

	if _, err = svc.GetByJoinCode(ctx, "NOPE12"); err != course.ErrNotFound {
		t.Errorf("GetByJoinCode() error = %v, want %v", err, course.ErrNotFound)
	}
}

func TestService_EnrollStudents(t *testing.T) {
	db, svc := setup()
	usrRepo := inmemdb.NewUserRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	ctx := context.Background()

	prof := testutil.CreateUser(t, usrRepo, "prof", "prof@faculty.example.edu", "", user.TypeProfessor, true)
	s1 := testutil.CreateUser(t, usrRepo, "student_1", "s1@student.example.edu", "", user.TypeStudent, true)
	s2 := testutil.CreateUser(t, usrRepo, "student_2", "s2@student.example.edu", "", user.TypeStudent, true)
	crs := testutil.CreateCourse(t, crsRepo, "CS101", "Intro to CS", course.SemesterFall, 2026, prof.ID)

	if err := svc.EnrollStudents(ctx, crs.JoinCode, s1.ID, s2.ID); err != nil {
		t.Fatalf("EnrollStudents() error = %v", err)
	}

	got, err := svc.GetByJoinCode(ctx, crs.JoinCode)
	if err != nil {
		t.Fatalf("GetByJoinCode() error = %v", err)
	}
	if got.StudentCount != 2 {
		t.Errorf("StudentCount = %d, want 2", got.StudentCount)
	}

	// re-joining must not inflate the count
	if err = svc.EnrollStudents(ctx, crs.JoinCode, s1.ID); err != nil {
		t.Fatalf("EnrollStudents() error = %v", err)
	}
	got, err = svc.GetByJoinCode(ctx, crs.JoinCode)
	if err != nil {
		t.Fatalf("GetByJoinCode() error = %v", err)
	}
	if got.StudentCount != 2 {
		t.Errorf("StudentCount after re-join = %d, want 2", got.StudentCount)
	}

	enrolled, err := svc.IsStudentEnrolled(ctx, crs.JoinCode, s1.ID)
	if err != nil {
		t.Fatalf("IsStudentEnrolled() error = %v", err)
	}
	if !enrolled {
		t.Error("IsStudentEnrolled() = false, want true")
	}
	enrolled, err = svc.IsStudentEnrolled(ctx, crs.JoinCode, prof.ID)
	if err != nil {
		t.Fatalf("IsStudentEnrolled() error = %v", err)
	}
	if enrolled {
		t.Error("IsStudentEnrolled() = true for the professor")
	}
}

func TestService_Teams(t *testing.T) {
	db, svc := setup()
	usrRepo := inmemdb.NewUserRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	ctx := context.Background()

	prof := testutil.CreateUser(t, usrRepo, "prof", "prof@faculty.example.edu", "", user.TypeProfessor, true)
	s1 := testutil.CreateUser(t, usrRepo, "student_1", "s1@student.example.edu", "", user.TypeStudent, true)
	crs := testutil.CreateCourse(t, crsRepo, "CS101", "Intro to CS", course.SemesterFall, 2026, prof.ID)
	otherCrs := testutil.CreateCourse(t, crsRepo, "CS102", "Data Structures", course.SemesterFall, 2026, prof.ID)

	tm, err := svc.CreateTeam(ctx, crs, course.NewTeam{Name: "Team 1", StudentIDs: []string{s1.ID}})
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if tm.ID == 0 {
		t.Error("CreateTeam() did not assign an ID")
	}
	if len(tm.StudentIDs) != 1 {
		t.Errorf("StudentIDs = %v, want 1 member", tm.StudentIDs)
	}

	teams, err := svc.QueryTeams(ctx, crs.JoinCode)
	if err != nil {
		t.Fatalf("QueryTeams() error = %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("QueryTeams() returned %d teams, want 1", len(teams))
	}

	// a team cannot be deleted through another course
	if err = svc.DeleteTeam(ctx, otherCrs, tm.ID); err != course.ErrTeamNotFound {
		t.Errorf("DeleteTeam() error = %v, want %v", err, course.ErrTeamNotFound)
	}
	if err = svc.DeleteTeam(ctx, crs, tm.ID); err != nil {
		t.Fatalf("DeleteTeam() error = %v", err)
	}
	teams, err = svc.QueryTeams(ctx, crs.JoinCode)
	if err != nil {
		t.Fatalf("QueryTeams() error = %v", err)
	}
	if len(teams) != 0 {
		t.Errorf("QueryTeams() returned %d teams after delete, want 0", len(teams))
	}
}
