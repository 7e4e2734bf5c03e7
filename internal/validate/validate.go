// Package validate implements the client-side form validation rules.
//
// Validation is synchronous and atomic: a draft is checked in one pass and
// the complete field -> message map is returned. An empty map means the
// draft may be submitted; a non-empty map blocks submission entirely.
package validate

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report fields under their wire names so local errors and server-side
	// conflict errors land in the same slots.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(validate.RegisterValidation("notblank", notBlank))
	must(validate.RegisterValidation("contact", contactNumber))
	must(validate.RegisterValidation("dobrange", dateOfBirthInRange))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// notBlank requires a non-empty value after trimming whitespace
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// contactNumber requires exactly 8 digits with a leading 7
func contactNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 8 || s[0] != '7' {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// dateOfBirthInRange requires a parseable date whose year falls in [1940, 2018]
func dateOfBirthInRange(fl validator.FieldLevel) bool {
	t, err := time.Parse("2006-01-02", fl.Field().String())
	if err != nil {
		return false
	}
	year := t.Year()
	return year >= 1940 && year <= 2018
}

// Fields validates a draft struct and returns a map from wire field name to
// a human-readable message. An empty map means every present field is valid.
func Fields(form any) map[string]string {
	errs := make(map[string]string)

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-validation failure (bad input type); surface it on a
		// catch-all slot rather than dropping it.
		errs["form"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		if _, taken := errs[fe.Field()]; !taken {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

// message maps a failed rule to the text shown on the original forms
func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		return "Enter a valid email address"
	case "fname":
		return "First name should contain only letters"
	case "sname":
		return "Surname should contain only letters"
	case "id_num":
		return "ID number is required"
	case "contact":
		return "Contact must start with 7 and be 8 digits long"
	case "dob":
		if fe.Tag() == "required" {
			return "Date of birth is required"
		}
		return "Date of birth must be between 1940 and 2018"
	case "password":
		if fe.Tag() == "min" {
			return "Password must be at least 8 characters"
		}
		return "Password is required"
	case "team_name":
		return "Please select a team"
	case "group":
		return "Please select a group"
	case "umpire_certification_id":
		return "Certification ID is required"
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}
