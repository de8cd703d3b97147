package course

import (
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/collabrate/collabrate/core"
)

// Semesters
const (
	SemesterSpring = "Spring"
	SemesterFall   = "Fall"
)

var Semesters = []string{SemesterSpring, SemesterFall}

const (
	joinCodeLen   = 6
	joinCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// displayColors is the palette a course card color is picked from when none is given.
var displayColors = []string{
	"#ff6b6b", "#4CAF50", "#3498db", "#f39c12", "#9b59b6",
	"#e74c3c", "#1abc9c", "#e67e22", "#2ecc71", "#8e44ad",
	"#c0392b", "#16a085", "#f1c40f", "#d35400", "#27ae60",
	"#2980b9", "#7f8c8d", "#bdc3c7", "#34495e",
}

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateJoinCode returns a six character uppercase alphanumeric code.
// Uniqueness is the caller's concern.
func GenerateJoinCode() string {
	b := make([]byte, joinCodeLen)
	for i := range b {
		b[i] = joinCodeChars[rng.Intn(len(joinCodeChars))]
	}
	return string(b)
}

func randomDisplayColor() string {
	return displayColors[rng.Intn(len(displayColors))]
}

// Course is identified externally by its JoinCode; the code never leaks
// internal numeric ids into URLs.
type Course struct {
	JoinCode     string `json:"join_code"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	Semester     string `json:"semester"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	StudentCount int    `json:"student_count"`
	ProfessorID  string `json:"professor_id"`
}

type Team struct {
	ID             int      `json:"id"`
	CourseJoinCode string   `json:"course_join_code"`
	Name           string   `json:"name"`
	StudentIDs     []string `json:"student_ids,omitempty"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code     string `json:"code" validate:"required,max=20"`
	Title    string `json:"title" validate:"required,max=100"`
	Semester string `json:"semester" validate:"required,semester"`
	Year     int    `json:"year" validate:"required,min=2000"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Title = core.CleanString(nc.Title)
	nc.Color = core.CleanString(nc.Color)
	return validate.Struct(nc)
}

// NewTeam contains information needed to create a new Team.
type NewTeam struct {
	Name       string   `json:"name" validate:"required,max=100"`
	StudentIDs []string `json:"student_ids"`
}

func (nt *NewTeam) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	return validate.Struct(nt)
}
