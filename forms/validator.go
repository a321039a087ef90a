package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired  = "This field is required."
	msgURL       = "Enter a valid URL."
	msgEmail     = "Enter a valid email address."
	msgSkills    = "Skills can only contain latin characters and +.:-."
	msgLatitude  = "Enter a valid latitude."
	msgLongitude = "Enter a valid longitude."
)

// skillsPattern is checked against the raw submission, so commas are allowed.
var skillsPattern = regexp.MustCompile(`^[a-zA-Z0-9 +.:,-]*$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the phonebook tags registered.
// Field names in validation errors come from the `form` struct tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		if err := v.RegisterValidation("skills", validateSkills); err != nil {
			panic(fmt.Sprintf("forms: register skills validation: %v", err))
		}
		validate = v
	})
	return validate
}

func validateSkills(fl validator.FieldLevel) bool {
	return skillsPattern.MatchString(fl.Field().String())
}

// checkStruct runs the tag rules of the submission and records failures into
// fields. Only non-validation failures are returned.
func checkStruct(submission any, fields FieldErrors) error {
	err := Validator().Struct(submission)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		fields.Add(fe.Field(), messageFor(fe))
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "url":
		return msgURL
	case "email":
		return msgEmail
	case "skills":
		return msgSkills
	case "latitude":
		return msgLatitude
	case "longitude":
		return msgLongitude
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed the %s check.", fe.Tag())
	}
}
