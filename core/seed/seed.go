// Package seed generates synthetic users, courses and teams in bulk for
// load-testing. A run is reproducible for a fixed seed: every draw (student
// counts, team sizes, shuffle order) comes from one seeded generator consumed
// in a fixed order. Opaque identifiers (uuids, join codes) are not reproducible.
package seed

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/identity"
	"github.com/collabrate/collabrate/core/user"
)

var (
	// errors
	ErrUnknownLevel        = errors.New("unknown load level")
	ErrUnknownSemester     = errors.New("unknown semester")
	ErrIdentityUnavailable = errors.New("identity repository not configured but --with-allauth was specified")
)

// Level describes a data volume tier.
type Level struct {
	Courses     int
	StudentsMin int
	StudentsMax int
	TeamMin     int
	TeamMax     int
}

var Levels = map[int]Level{
	1: {Courses: 150, StudentsMin: 30, StudentsMax: 80, TeamMin: 4, TeamMax: 8},
	2: {Courses: 700, StudentsMin: 30, StudentsMax: 80, TeamMin: 4, TeamMax: 6},
	3: {Courses: 2000, StudentsMin: 30, StudentsMax: 100, TeamMin: 4, TeamMax: 6},
}

const (
	studentDomain   = "student.example.edu"
	professorDomain = "faculty.example.edu"
	seedPassword    = "Passw0rd!"
	identityChunk   = 1000
)

type Options struct {
	Level         int
	Semester      string
	Year          int
	Seed          int64
	WithIdentity  bool
	FastPasswords bool
	Purge         bool
}

// Stats reports what a run created; the per-course slices exist so callers
// (and tests) can verify reproducibility of the drawn values.
type Stats struct {
	Courses           int
	Professors        int
	Students          int
	Teams             int
	StudentsPerCourse []int
	TeamsPerCourse    []int
}

// Store runs a function inside one atomic unit of work; the whole seeding run
// either commits or none of it does.
type Store interface {
	Atomic(ctx context.Context, fn func(exec core.DBExecutor) error) error
}

type Seeder struct {
	store    Store
	usrRepo  user.Repository
	crsRepo  course.Repository
	teamRepo course.TeamRepository
	idRepo   identity.Repository // nil when the integration is unavailable
	out      io.Writer
}

func NewSeeder(
	store Store,
	usrRepo user.Repository,
	crsRepo course.Repository,
	teamRepo course.TeamRepository,
	idRepo identity.Repository,
	out io.Writer,
) *Seeder {
	return &Seeder{
		store:    store,
		usrRepo:  usrRepo,
		crsRepo:  crsRepo,
		teamRepo: teamRepo,
		idRepo:   idRepo,
		out:      out,
	}
}

// Run generates the requested data volume. Configuration errors abort before
// any writes.
func (s *Seeder) Run(ctx context.Context, opts Options) (Stats, error) {
	level, ok := Levels[opts.Level]
	if !ok {
		return Stats{}, ErrUnknownLevel
	}
	if opts.Semester != course.SemesterSpring && opts.Semester != course.SemesterFall {
		return Stats{}, ErrUnknownSemester
	}
	if opts.WithIdentity && s.idRepo == nil {
		return Stats{}, ErrIdentityUnavailable
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	// The same literal password is used for every generated user; hash it once.
	var pwdHash []byte
	if !opts.FastPasswords {
		usr := user.User{}
		if err := usr.SetPassword(seedPassword); err != nil {
			return Stats{}, errors.Wrap(err, "hashing seed password")
		}
		pwdHash = usr.PasswordHash
	}

	var stats Stats
	err := s.store.Atomic(ctx, func(exec core.DBExecutor) error {
		if opts.Purge {
			if err := s.purge(ctx, exec); err != nil {
				return err
			}
		}

		s.printf("Seeding level %d: ~%d courses in %s %d", opts.Level, level.Courses, opts.Semester, opts.Year)

		usernameCounter := int(rng.Float64() * 1000)
		nextUsername := func(prefix string) string {
			usernameCounter++
			return fmt.Sprintf("%s%d", prefix, usernameCounter)
		}

		var emailRecs []identity.EmailVerification
		var socialRecs []identity.SocialAccount
		stageIdentity := func(usr user.User) {
			emailRecs = append(emailRecs, identity.EmailVerification{
				UserID:   usr.ID,
				Email:    usr.Email,
				Verified: true,
				Primary:  true,
			})
			socialRecs = append(socialRecs, identity.SocialAccount{
				UserID:   usr.ID,
				Provider: "google",
				UID:      fmt.Sprintf("google-oauth2|%s", uuid.New()),
				Extra: map[string]string{
					"email": usr.Email,
					"name":  strings.ReplaceAll(usr.Username, "_", " "),
				},
			})
		}

		startTime := time.Now()
		progressEvery := level.Courses / 20 // ~5% increments
		if progressEvery < 1 {
			progressEvery = 1
		}

		for courseIndex := 0; courseIndex < level.Courses; courseIndex++ {
			courseCode := fmt.Sprintf("CS%d", 100+(courseIndex%400))
			courseTitle := fmt.Sprintf("Course %s Section %d", courseCode, courseIndex%5)

			// Professor
			professor, err := s.createUser(ctx, exec, nextUsername("prof_"), professorDomain, user.TypeProfessor, pwdHash)
			if err != nil {
				return err
			}
			stats.Professors++

			// Course
			crs, err := s.createCourse(ctx, exec, course.Course{
				Code:        courseCode,
				Title:       courseTitle,
				Semester:    opts.Semester,
				Year:        opts.Year,
				ProfessorID: professor.ID,
			})
			if err != nil {
				return err
			}
			stats.Courses++

			// Students for this course
			numStudents := randRange(rng, level.StudentsMin, level.StudentsMax)
			students := make([]user.User, 0, numStudents)
			studentIDs := make([]string, 0, numStudents)
			for i := 0; i < numStudents; i++ {
				student, err := s.createUser(ctx, exec, nextUsername("student_"), studentDomain, user.TypeStudent, pwdHash)
				if err != nil {
					return err
				}
				students = append(students, student)
				studentIDs = append(studentIDs, student.ID)
			}
			stats.Students += numStudents
			stats.StudentsPerCourse = append(stats.StudentsPerCourse, numStudents)

			// Enroll students
			if _, err = s.crsRepo.EnrollStudents(ctx, crs.JoinCode, studentIDs, exec); err != nil {
				return errors.Wrap(err, "enrolling students")
			}
			if err = s.crsRepo.SetStudentCount(ctx, crs.JoinCode, numStudents, exec); err != nil {
				return errors.Wrap(err, "setting student count")
			}

			// Teams: choose a preferred size and partition the shuffled roster
			preferredTeamSize := randRange(rng, level.TeamMin, level.TeamMax)
			rng.Shuffle(len(studentIDs), func(i, j int) {
				studentIDs[i], studentIDs[j] = studentIDs[j], studentIDs[i]
			})
			teamsNeeded := int(math.Ceil(float64(numStudents) / float64(preferredTeamSize)))
			if teamsNeeded < 1 {
				teamsNeeded = 1
			}
			teams := make([]course.Team, 0, teamsNeeded)
			for teamNum := 0; teamNum < teamsNeeded; teamNum++ {
				tm, err := s.teamRepo.CreateTeam(ctx, course.Team{
					CourseJoinCode: crs.JoinCode,
					Name:           fmt.Sprintf("Team %d", teamNum+1),
				}, exec)
				if err != nil {
					return errors.Wrap(err, "creating team")
				}
				teams = append(teams, tm)
			}
			stats.Teams += teamsNeeded
			stats.TeamsPerCourse = append(stats.TeamsPerCourse, teamsNeeded)

			// Assign students to teams round-robin
			for idx, studentID := range studentIDs {
				tm := teams[idx%teamsNeeded]
				if err = s.teamRepo.AddTeamStudents(ctx, tm.ID, []string{studentID}, exec); err != nil {
					return errors.Wrap(err, "assigning student to team")
				}
			}

			if opts.WithIdentity {
				stageIdentity(professor)
				for _, student := range students {
					stageIdentity(student)
				}
			}

			if (courseIndex+1)%progressEvery == 0 || courseIndex+1 == level.Courses {
				elapsed := time.Since(startTime).Seconds()
				pct := float64(courseIndex+1) / float64(level.Courses) * 100
				s.printf("Created courses: %d/%d (%.1f%%) in %.1fs", courseIndex+1, level.Courses, pct, elapsed)
			}
		}

		// Bulk insert identity rows in chunks to avoid large INSERTs
		if opts.WithIdentity {
			if err := s.bulkCreateIdentity(ctx, exec, emailRecs, socialRecs); err != nil {
				return err
			}
		}

		s.printf("Created %d courses, %d professors, %d students, %d teams",
			stats.Courses, stats.Professors, stats.Students, stats.Teams)
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (s *Seeder) createUser(
	ctx context.Context,
	exec core.DBExecutor,
	username, domain, userType string,
	pwdHash []byte,
) (user.User, error) {
	now := time.Now().UTC()
	usr := user.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@%s", username, domain),
		Type:      userType,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwdHash != nil {
		usr.PasswordHash = pwdHash
	} else {
		usr.SetUnusablePassword()
	}
	usr, err := s.usrRepo.CreateUser(ctx, usr, exec)
	return usr, errors.Wrap(err, "creating user")
}

func (s *Seeder) createCourse(ctx context.Context, exec core.DBExecutor, crs course.Course) (course.Course, error) {
	for {
		crs.JoinCode = course.GenerateJoinCode()
		exists, err := s.crsRepo.JoinCodeExists(ctx, crs.JoinCode, exec)
		if err != nil {
			return course.Course{}, errors.Wrap(err, "checking join code")
		}
		if !exists {
			break
		}
	}
	crs, err := s.crsRepo.CreateCourse(ctx, crs, exec)
	return crs, errors.Wrap(err, "creating course")
}

func (s *Seeder) bulkCreateIdentity(
	ctx context.Context,
	exec core.DBExecutor,
	emailRecs []identity.EmailVerification,
	socialRecs []identity.SocialAccount,
) error {
	for done := 0; done < len(emailRecs); {
		batch := emailRecs[done:min(done+identityChunk, len(emailRecs))]
		if err := s.idRepo.BulkCreateEmailVerifications(ctx, batch, exec); err != nil {
			return errors.Wrap(err, "bulk creating email verifications")
		}
		done += len(batch)
		s.printf("EmailVerification bulk: %d/%d", done, len(emailRecs))
	}
	for done := 0; done < len(socialRecs); {
		batch := socialRecs[done:min(done+identityChunk, len(socialRecs))]
		if err := s.idRepo.BulkCreateSocialAccounts(ctx, batch, exec); err != nil {
			return errors.Wrap(err, "bulk creating social accounts")
		}
		done += len(batch)
		s.printf("SocialAccount bulk: %d/%d", done, len(socialRecs))
	}
	return nil
}

// purge deletes all existing rows in dependency order.
func (s *Seeder) purge(ctx context.Context, exec core.DBExecutor) error {
	if s.idRepo != nil {
		nEmail, err := s.idRepo.DeleteAllEmailVerifications(ctx, exec)
		if err != nil {
			return errors.Wrap(err, "purging email verifications")
		}
		nSocial, err := s.idRepo.DeleteAllSocialAccounts(ctx, exec)
		if err != nil {
			return errors.Wrap(err, "purging social accounts")
		}
		s.printf("Purged %d email verifications, %d social accounts", nEmail, nSocial)
	}
	nTeams, err := s.teamRepo.DeleteAllTeams(ctx, exec)
	if err != nil {
		return errors.Wrap(err, "purging teams")
	}
	nCourses, err := s.crsRepo.DeleteAllCourses(ctx, exec)
	if err != nil {
		return errors.Wrap(err, "purging courses")
	}
	nUsers, err := s.usrRepo.DeleteAllUsers(ctx, exec)
	if err != nil {
		return errors.Wrap(err, "purging users")
	}
	s.printf("Purged %d teams, %d courses, %d users", nTeams, nCourses, nUsers)
	return nil
}

func (s *Seeder) printf(format string, args ...interface{}) {
	if s.out != nil {
		fmt.Fprintf(s.out, format+"\n", args...)
	}
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
