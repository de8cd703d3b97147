package form

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
)

func set(val string) Optional {
	return Optional{Value: val, Set: true}
}

func fieldErrs(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	if !ok {
		t.Fatalf("expected *core.ValidationError, got %T: %v", err, err)
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, fe := range vErr.Fields {
		flds[fe.Field] = fe.Error
	}
	return flds
}

func TestNewCourseForm_Resolve_defaults(t *testing.T) {
	tests := []struct {
		name string
		nf   NewCourseForm
	}{
		{name: "all absent", nf: NewCourseForm{}},
		{name: "all blank", nf: NewCourseForm{
			Name:         set(""),
			NumLikert:    set(" "),
			NumOpenEnded: set(""),
			DueDatetime:  set(""),
			Colors:       [5]Optional{set(""), set(" "), set(""), set(""), set("")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := tt.nf.Resolve(time.UTC)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if cf.Name != DefaultName {
				t.Errorf("Name = %q, want %q", cf.Name, DefaultName)
			}
			if cf.NumLikert != 3 {
				t.Errorf("NumLikert = %d, want 3", cf.NumLikert)
			}
			if cf.NumOpenEnded != 1 {
				t.Errorf("NumOpenEnded = %d, want 1", cf.NumOpenEnded)
			}
			if cf.DueAt.Valid {
				t.Errorf("DueAt = %v, want unset", cf.DueAt)
			}
			if cf.SelfEvaluate {
				t.Error("SelfEvaluate = true, want false")
			}
			if got := cf.Colors(); got != defaultPalette {
				t.Errorf("Colors() = %v, want %v", got, defaultPalette)
			}
		})
	}
}

func TestNewCourseForm_Resolve_counts(t *testing.T) {
	tests := []struct {
		name      string
		nf        NewCourseForm
		wantLik   int
		wantOpen  int
		wantField string
		wantText  string
	}{
		{name: "explicit values", nf: NewCourseForm{NumLikert: set("5"), NumOpenEnded: set("0")}, wantLik: 5, wantOpen: 0},
		{name: "whitespace trimmed", nf: NewCourseForm{NumLikert: set(" 7 ")}, wantLik: 7, wantOpen: 1},
		{name: "non-integer likert", nf: NewCourseForm{NumLikert: set("2.5")}, wantField: "num_likert", wantText: "must be a whole number"},
		{name: "non-numeric open ended", nf: NewCourseForm{NumOpenEnded: set("many")}, wantField: "num_open_ended", wantText: "must be a whole number"},
		{name: "negative likert", nf: NewCourseForm{NumLikert: set("-1")}, wantField: "num_likert", wantText: "must not be negative"},
		{name: "negative open ended", nf: NewCourseForm{NumOpenEnded: set("-3")}, wantField: "num_open_ended", wantText: "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := tt.nf.Resolve(time.UTC)
			if tt.wantField != "" {
				if err == nil {
					t.Fatal("Resolve() expected error, got nil")
				}
				if got := fieldErrs(t, err)[tt.wantField]; got != tt.wantText {
					t.Errorf("field %s = %q, want %q", tt.wantField, got, tt.wantText)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if cf.NumLikert != tt.wantLik {
				t.Errorf("NumLikert = %d, want %d", cf.NumLikert, tt.wantLik)
			}
			if cf.NumOpenEnded != tt.wantOpen {
				t.Errorf("NumOpenEnded = %d, want %d", cf.NumOpenEnded, tt.wantOpen)
			}
		})
	}
}

func TestNewCourseForm_Resolve_dueDatetime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation() failed: %v", err)
	}

	t.Run("valid without seconds", func(t *testing.T) {
		nf := NewCourseForm{DueDatetime: set("2030-12-31T23:59")}
		cf, err := nf.Resolve(loc)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := time.Date(2030, 12, 31, 23, 59, 0, 0, loc)
		if !cf.DueAt.Valid || !cf.DueAt.Time.Equal(want) {
			t.Errorf("DueAt = %v, want %v", cf.DueAt.Time, want)
		}
	})

	t.Run("valid with seconds", func(t *testing.T) {
		nf := NewCourseForm{DueDatetime: set("2030-06-15T08:30:45")}
		cf, err := nf.Resolve(loc)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !cf.DueAt.Valid || cf.DueAt.Time.Second() != 45 {
			t.Errorf("DueAt = %v, want seconds kept", cf.DueAt.Time)
		}
	})

	t.Run("past date is allowed", func(t *testing.T) {
		nf := NewCourseForm{DueDatetime: set("2020-01-01T00:00")}
		if _, err := nf.Resolve(loc); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		nf := NewCourseForm{DueDatetime: set("31/12/2030 23:59")}
		_, err := nf.Resolve(loc)
		if err == nil {
			t.Fatal("Resolve() expected error, got nil")
		}
		if got := fieldErrs(t, err)["due_datetime"]; got != ErrInvalidDateTime.Error() {
			t.Errorf("due_datetime = %q, want %q", got, ErrInvalidDateTime.Error())
		}
	})
}

func TestNewCourseForm_Resolve_nameAndColors(t *testing.T) {
	t.Run("name too long", func(t *testing.T) {
		nf := NewCourseForm{Name: set(strings.Repeat("x", maxNameLen+1))}
		_, err := nf.Resolve(time.UTC)
		if err == nil {
			t.Fatal("Resolve() expected error, got nil")
		}
		if _, ok := fieldErrs(t, err)["form_name"]; !ok {
			t.Error("expected a form_name field error")
		}
	})

	t.Run("name at limit", func(t *testing.T) {
		nf := NewCourseForm{Name: set(strings.Repeat("x", maxNameLen))}
		if _, err := nf.Resolve(time.UTC); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
	})

	t.Run("custom colors", func(t *testing.T) {
		nf := NewCourseForm{Colors: [5]Optional{set("#FFF"), set("#a1b2c3"), {}, {}, {}}}
		cf, err := nf.Resolve(time.UTC)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := [5]string{"#FFF", "#a1b2c3", defaultPalette[2], defaultPalette[3], defaultPalette[4]}
		if got := cf.Colors(); got != want {
			t.Errorf("Colors() = %v, want %v", got, want)
		}
	})

	t.Run("invalid color", func(t *testing.T) {
		nf := NewCourseForm{Colors: [5]Optional{{}, {}, set("red"), {}, {}}}
		_, err := nf.Resolve(time.UTC)
		if err == nil {
			t.Fatal("Resolve() expected error, got nil")
		}
		if _, ok := fieldErrs(t, err)["color_3"]; !ok {
			t.Error("expected a color_3 field error")
		}
	})
}
