package forms

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"ms-directory/internal/models"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// startTimeLayouts are tried in order when parsing a submitted show time.
var startTimeLayouts = []string{
	models.ShowTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their form names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "state", func(fl validator.FieldLevel) bool {
		return models.IsValidState(fl.Field().String())
	})
	mustRegister(v, "genre", func(fl validator.FieldLevel) bool {
		return models.IsValidGenre(fl.Field().String())
	})
	mustRegister(v, "showtime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ParseStartTime accepts the layouts a browser or API client is likely to
// submit. Zone-less values are read as UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.NormalizeShowTime(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q", s)
}

// check runs the struct validator and converts its report into a
// ValidationError listing one message per failed field.
func check(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	ve := &models.ValidationError{}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if ve.Has(field) {
			continue
		}
		ve.Add(field, message(field, fe.Tag()))
	}
	return ve.OrNil()
}

func message(field, tag string) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required", "min":
		return fmt.Sprintf("The %s field is required.", label)
	case "phone":
		return "Invalid phone number. The phone field must look like 123-456-7890."
	case "state":
		return fmt.Sprintf("Invalid %s choice.", label)
	case "genre":
		return "Invalid genres choice."
	case "url":
		return fmt.Sprintf("Invalid URL in the %s field.", label)
	case "number":
		return fmt.Sprintf("The %s field must be a number.", label)
	case "showtime":
		return "Not a valid datetime value in the start time field."
	default:
		return fmt.Sprintf("Invalid value in the %s field.", label)
	}
}
