package form

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/collabrate/collabrate/core"
)

// DefaultName is used when a form is submitted without a name.
const DefaultName = "Untitled Form"

const maxNameLen = 255

// defaultPalette holds the color_1..color_5 fallbacks, in order.
var defaultPalette = [5]string{"#872729", "#C44B4B", "#F2F0EF", "#3D5A80", "#293241"}

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// dueDatetimeLayouts are the accepted naive local date-time formats
// (HTML datetime-local, with and without seconds).
var dueDatetimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

var ErrInvalidDateTime = errors.New("Invalid date/time format.")

// DefaultColors returns the default palette keyed color_1..color_5.
func DefaultColors() map[string]string {
	return map[string]string{
		"color_1": defaultPalette[0],
		"color_2": defaultPalette[1],
		"color_3": defaultPalette[2],
		"color_4": defaultPalette[3],
		"color_5": defaultPalette[4],
	}
}

// CourseForm is a peer-evaluation form definition. It is immutable once created.
type CourseForm struct {
	ID             int       `json:"id"`
	CourseJoinCode string    `json:"course_join_code"`
	Name           string    `json:"name"`
	SelfEvaluate   bool      `json:"self_evaluate"`
	NumLikert      int       `json:"num_likert"`
	NumOpenEnded   int       `json:"num_open_ended"`
	DueAt          null.Time `json:"due_datetime"`
	Color1         string    `json:"color_1"`
	Color2         string    `json:"color_2"`
	Color3         string    `json:"color_3"`
	Color4         string    `json:"color_4"`
	Color5         string    `json:"color_5"`
	CreatedAt      time.Time `json:"created_at"` // UTC
}

func (cf CourseForm) Colors() [5]string {
	return [5]string{cf.Color1, cf.Color2, cf.Color3, cf.Color4, cf.Color5}
}

// Optional is a form value that knows whether it was present in the request.
// A field that is absent OR present-but-blank resolves to its default.
type Optional struct {
	Value string
	Set   bool
}

func (o Optional) Or(def string) string {
	val := strings.TrimSpace(o.Value)
	if !o.Set || val == "" {
		return def
	}
	return val
}

// NewCourseForm carries the raw submitted fields of a form-creation request.
// Count and date fields stay strings until Resolve so that malformed input
// surfaces as a validation error instead of a binding failure.
type NewCourseForm struct {
	Name         Optional
	SelfEvaluate bool
	NumLikert    Optional
	NumOpenEnded Optional
	DueDatetime  Optional
	Colors       [5]Optional
}

// Resolve applies defaulting and parsing to the raw fields and returns the
// CourseForm to persist. Naive due date-times are interpreted in loc.
func (nf *NewCourseForm) Resolve(loc *time.Location) (CourseForm, error) {
	cf := CourseForm{
		Name:         nf.Name.Or(DefaultName),
		SelfEvaluate: nf.SelfEvaluate,
	}

	if len(cf.Name) > maxNameLen {
		return CourseForm{}, core.NewValidationError(nil, core.FieldError{
			Field: "form_name",
			Error: "form name must be at most 255 characters",
		})
	}

	var err error
	if cf.NumLikert, err = parseCount("num_likert", nf.NumLikert, 3); err != nil {
		return CourseForm{}, err
	}
	if cf.NumOpenEnded, err = parseCount("num_open_ended", nf.NumOpenEnded, 1); err != nil {
		return CourseForm{}, err
	}

	if due := nf.DueDatetime.Or(""); due != "" {
		t, perr := parseDueDatetime(due, loc)
		if perr != nil {
			return CourseForm{}, core.NewValidationError(ErrInvalidDateTime, core.FieldError{
				Field: "due_datetime",
				Error: ErrInvalidDateTime.Error(),
			})
		}
		cf.DueAt = null.TimeFrom(t)
	}

	colors := [5]string{}
	for i, c := range nf.Colors {
		colors[i] = c.Or(defaultPalette[i])
		if !hexColorRegex.MatchString(colors[i]) {
			return CourseForm{}, core.NewValidationError(nil, core.FieldError{
				Field: "color_" + strconv.Itoa(i+1),
				Error: "enter a valid hex color code, e.g., #FFF or #FFFFFF",
			})
		}
	}
	cf.Color1, cf.Color2, cf.Color3, cf.Color4, cf.Color5 =
		colors[0], colors[1], colors[2], colors[3], colors[4]

	return cf, nil
}

func parseCount(field string, o Optional, def int) (int, error) {
	raw := o.Or("")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{
			Field: field,
			Error: "must be a whole number",
		})
	}
	if n < 0 {
		return 0, core.NewValidationError(nil, core.FieldError{
			Field: field,
			Error: "must not be negative",
		})
	}
	return n, nil
}

func parseDueDatetime(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range dueDatetimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}
