package form_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/form"
	inmemdb "github.com/collabrate/collabrate/storage/database/inmem"
)

func TestService_Create(t *testing.T) {
	db := inmemdb.Open()
	repo := inmemdb.NewFormRepository(db)
	svc := form.NewService(repo, time.UTC)
	ctx := context.Background()

	crs := course.Course{JoinCode: "ABC123"}
	other := course.Course{JoinCode: "XYZ789"}

	cf, err := svc.Create(ctx, crs, form.NewCourseForm{
		Name:         form.Optional{Value: "Midterm Peer Review", Set: true},
		SelfEvaluate: true,
		NumLikert:    form.Optional{Value: "5", Set: true},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cf.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if cf.CourseJoinCode != crs.JoinCode {
		t.Errorf("CourseJoinCode = %q, want %q", cf.CourseJoinCode, crs.JoinCode)
	}
	if cf.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if !cf.SelfEvaluate || cf.NumLikert != 5 || cf.NumOpenEnded != 1 {
		t.Errorf("resolved form = %+v", cf)
	}

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, crs, form.NewCourseForm{
			Name: form.Optional{Value: "Midterm Peer Review", Set: true},
		})
		if err == nil {
			t.Fatal("Create() expected error, got nil")
		}
		vErr, ok := errors.Cause(err).(*core.ValidationError)
		if !ok {
			t.Fatalf("expected *core.ValidationError, got %T", err)
		}
		if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "form_name" {
			t.Errorf("Fields = %+v, want one form_name error", vErr.Fields)
		}
		if vErr.Error() != form.ErrNameExists.Error() {
			t.Errorf("Error() = %q, want %q", vErr.Error(), form.ErrNameExists.Error())
		}
	})

	t.Run("same name in another course is fine", func(t *testing.T) {
		if _, err := svc.Create(ctx, other, form.NewCourseForm{
			Name: form.Optional{Value: "Midterm Peer Review", Set: true},
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	})

	t.Run("default name conflicts too", func(t *testing.T) {
		if _, err := svc.Create(ctx, crs, form.NewCourseForm{}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		_, err := svc.Create(ctx, crs, form.NewCourseForm{})
		if err == nil {
			t.Fatal("Create() expected duplicate error for default name")
		}
	})

	t.Run("rejection persists nothing", func(t *testing.T) {
		before, err := svc.QueryByCourse(ctx, crs.JoinCode)
		if err != nil {
			t.Fatalf("QueryByCourse() error = %v", err)
		}

		_, err = svc.Create(ctx, crs, form.NewCourseForm{
			Name:      form.Optional{Value: "Final Review", Set: true},
			NumLikert: form.Optional{Value: "-2", Set: true},
		})
		if err == nil {
			t.Fatal("Create() expected error, got nil")
		}

		after, err := svc.QueryByCourse(ctx, crs.JoinCode)
		if err != nil {
			t.Fatalf("QueryByCourse() error = %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("forms count = %d, want %d", len(after), len(before))
		}
	})
}
