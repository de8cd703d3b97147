package course

import (
	"strings"
	"testing"

	"github.com/collabrate/collabrate/core"
)

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateJoinCode()
		if len(code) != joinCodeLen {
			t.Fatalf("GenerateJoinCode() = %q, want %d characters", code, joinCodeLen)
		}
		for _, c := range code {
			if !strings.ContainsRune(joinCodeChars, c) {
				t.Fatalf("GenerateJoinCode() = %q contains %q", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 90 {
		t.Errorf("GenerateJoinCode() produced only %d distinct codes out of 100", len(seen))
	}
}

func TestNewCourse_Validate(t *testing.T) {
	validate, translator := core.Validate, core.Translator
	InitValidators(validate, translator)

	tests := []struct {
		name    string
		nc      NewCourse
		wantErr bool
	}{
		{name: "valid", nc: NewCourse{Code: "CS101", Title: "Intro to CS", Semester: SemesterFall, Year: 2026}},
		{name: "valid with color", nc: NewCourse{Code: "CS101", Title: "Intro to CS", Semester: SemesterSpring, Year: 2026, Color: "#3D5A80"}},
		{name: "bad semester", nc: NewCourse{Code: "CS101", Title: "Intro to CS", Semester: "Winter", Year: 2026}, wantErr: true},
		{name: "bad color", nc: NewCourse{Code: "CS101", Title: "Intro to CS", Semester: SemesterFall, Year: 2026, Color: "blue"}, wantErr: true},
		{name: "missing code", nc: NewCourse{Title: "Intro to CS", Semester: SemesterFall, Year: 2026}, wantErr: true},
		{name: "year too old", nc: NewCourse{Code: "CS101", Title: "Intro to CS", Semester: SemesterFall, Year: 1999}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nc.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
