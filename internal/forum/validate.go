package forum

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
)

var (
	usernamePattern      = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	communityNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(f.Name)
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("communityname", func(fl validator.FieldLevel) bool {
		return communityNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// check validates s and reports the first failing field as a ValidationError.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation("invalid_input", err.Error())
	}
	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperr.Validation(field+"_required", field+" is required")
	case "min":
		return apperr.Validation("invalid_"+field, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
	case "max":
		return apperr.Validation("invalid_"+field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "email":
		return apperr.Validation("invalid_"+field, field+" must be a valid email address")
	case "username":
		return apperr.Validation("invalid_"+field, field+" may only contain letters, digits, '-' and '_'")
	case "communityname":
		return apperr.Validation("invalid_"+field, field+" may only contain letters, digits and '_'")
	}
	return apperr.Validation("invalid_"+field, field+" is invalid")
}

func requireIdentity(id auth.Identity) error {
	if id.UserID <= 0 {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}
