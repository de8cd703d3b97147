package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/form"
	"github.com/collabrate/collabrate/core/user"
	testutil "github.com/collabrate/collabrate/tests"
)

type courseFixture struct {
	owner      user.User
	otherProf  user.User
	enrolled   user.User
	unenrolled user.User
	crs        course.Course
}

func newCourseFixture(t *testing.T, suffix string) courseFixture {
	t.Helper()

	f := courseFixture{
		owner:      testutil.CreateUser(t, usrRepo, "prof_"+suffix, "prof_"+suffix+"@faculty.example.edu", "", user.TypeProfessor, true),
		otherProf:  testutil.CreateUser(t, usrRepo, "prof2_"+suffix, "prof2_"+suffix+"@faculty.example.edu", "", user.TypeProfessor, true),
		enrolled:   testutil.CreateUser(t, usrRepo, "stud_"+suffix, "stud_"+suffix+"@student.example.edu", "", user.TypeStudent, true),
		unenrolled: testutil.CreateUser(t, usrRepo, "out_"+suffix, "out_"+suffix+"@student.example.edu", "", user.TypeStudent, true),
	}
	f.crs = testutil.CreateCourse(t, crsRepo, "CS101", "Intro to CS", course.SemesterFall, 2026, f.owner.ID)
	testutil.EnrollStudents(t, crsRepo, f.crs, f.enrolled.ID)
	return f
}

func TestFormCreate_accessControl(t *testing.T) {
	f := newCourseFixture(t, "fac")
	path := "/v1/courses/" + f.crs.JoinCode + "/forms/create"

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		req, rec := newJSONRequest(http.MethodGet, path, "", "")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("code = %d, want %d", rec.Code, http.StatusFound)
		}
		want := "/login?next=" + url.QueryEscape(path)
		if loc := rec.Header().Get("Location"); loc != want {
			t.Errorf("Location = %q, want %q", loc, want)
		}
	})

	tests := []struct {
		name    string
		usr     user.User
		wantErr string
	}{
		{name: "enrolled student", usr: f.enrolled, wantErr: "Access denied: Professors only."},
		{name: "unenrolled student", usr: f.unenrolled, wantErr: "Access denied: Professors only."},
		{name: "non-owner professor", usr: f.otherProf, wantErr: "You do not have permission to access this course."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newJSONRequest(http.MethodGet, path, getToken(t, tt.usr), "")
			app.ServeHTTP(rec, req)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusForbidden, rec.Body.String())
			}
			if got := decodeErr(t, rec).Error; got != tt.wantErr {
				t.Errorf("error = %q, want %q", got, tt.wantErr)
			}

			// POST is refused the same way
			req, rec = newFormRequest(path, getToken(t, tt.usr), url.Values{"form_name": {"Sneaky"}})
			app.ServeHTTP(rec, req)
			if rec.Code != http.StatusForbidden {
				t.Errorf("POST code = %d, want %d", rec.Code, http.StatusForbidden)
			}
		})
	}

	t.Run("unknown course", func(t *testing.T) {
		req, rec := newJSONRequest(http.MethodGet, "/v1/courses/NOPE12/forms/create", getToken(t, f.owner), "")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("owner gets the page data", func(t *testing.T) {
		req, rec := newJSONRequest(http.MethodGet, path, getToken(t, f.owner), "")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var data struct {
			DefaultColors map[string]string `json:"default_colors"`
			Forms         []form.CourseForm `json:"forms"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if data.DefaultColors["color_1"] != "#872729" {
			t.Errorf("default color_1 = %q, want #872729", data.DefaultColors["color_1"])
		}
		if len(data.Forms) != 0 {
			t.Errorf("forms = %v, want empty", data.Forms)
		}
	})
}

func TestFormCreate_submit(t *testing.T) {
	f := newCourseFixture(t, "sub")
	path := "/v1/courses/" + f.crs.JoinCode + "/forms/create"
	token := getToken(t, f.owner)

	t.Run("success redirects to the course page", func(t *testing.T) {
		req, rec := newFormRequest(path, token, url.Values{
			"form_name":     {"Sprint Review"},
			"self_evaluate": {"on"},
			"num_likert":    {"4"},
			"due_datetime":  {"2030-12-31T23:59"},
		})
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusFound, rec.Body.String())
		}
		if loc := rec.Header().Get("Location"); loc != "/v1/courses/"+f.crs.JoinCode {
			t.Errorf("Location = %q", loc)
		}

		forms, err := formSvc.QueryByCourse(context.Background(), f.crs.JoinCode)
		if err != nil {
			t.Fatalf("QueryByCourse() error = %v", err)
		}
		if len(forms) != 1 {
			t.Fatalf("forms = %d, want 1", len(forms))
		}
		cf := forms[0]
		if cf.Name != "Sprint Review" || !cf.SelfEvaluate || cf.NumLikert != 4 || cf.NumOpenEnded != 1 {
			t.Errorf("stored form = %+v", cf)
		}
		if !cf.DueAt.Valid {
			t.Error("DueAt not stored")
		}
		if cf.Color1 != "#872729" || cf.Color5 != "#293241" {
			t.Errorf("palette not defaulted: %q .. %q", cf.Color1, cf.Color5)
		}
	})

	t.Run("blank submission gets the defaults", func(t *testing.T) {
		req, rec := newFormRequest(path, token, url.Values{})
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusFound, rec.Body.String())
		}

		forms, err := formSvc.QueryByCourse(context.Background(), f.crs.JoinCode)
		if err != nil {
			t.Fatalf("QueryByCourse() error = %v", err)
		}
		cf := forms[len(forms)-1]
		if cf.Name != form.DefaultName || cf.NumLikert != 3 || cf.NumOpenEnded != 1 {
			t.Errorf("stored form = %+v", cf)
		}
	})

	tests := []struct {
		name      string
		values    url.Values
		wantField string
		wantText  string
	}{
		{
			name:      "duplicate name",
			values:    url.Values{"form_name": {"Sprint Review"}},
			wantField: "form_name",
			wantText:  "a form with this name already exists for this course",
		},
		{
			name:      "invalid due date",
			values:    url.Values{"form_name": {"Retro"}, "due_datetime": {"someday"}},
			wantField: "due_datetime",
			wantText:  "Invalid date/time format.",
		},
		{
			name:      "non-integer count",
			values:    url.Values{"form_name": {"Retro"}, "num_likert": {"3.5"}},
			wantField: "num_likert",
			wantText:  "must be a whole number",
		},
		{
			name:      "negative count",
			values:    url.Values{"form_name": {"Retro"}, "num_open_ended": {"-1"}},
			wantField: "num_open_ended",
			wantText:  "must not be negative",
		},
		{
			name:      "bad color",
			values:    url.Values{"form_name": {"Retro"}, "color_2": {"blue"}},
			wantField: "color_2",
			wantText:  "enter a valid hex color code, e.g., #FFF or #FFFFFF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newFormRequest(path, token, tt.values)
			app.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			if got := decodeFields(t, rec)[tt.wantField]; got != tt.wantText {
				t.Errorf("field %s = %q, want %q", tt.wantField, got, tt.wantText)
			}
		})
	}
}
