package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/comic_catalog/internal/hash"
	"github.com/Skotchmaster/comic_catalog/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= hash.MaxPasswordBytes
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
	return v
}

// hashPassword reports an over-long password as a validation failure.
func hashPassword(h PasswordHasher, field, password string) (string, error) {
	pwHash, err := h.Hash(password)
	if errors.Is(err, hash.ErrPasswordTooLong) {
		return "", &ValidationError{Fields: map[string]string{field: describeTag("bcryptlen", "")}}
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return pwHash, nil
}

// ValidationError lists the request fields that failed and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, rule := range e.Fields {
		parts = append(parts, field+" "+rule)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"body": err.Error()}}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	if fe.Tag() == "eqfield" {
		return "must match " + jsonName(fe)
	}
	return describeTag(fe.Tag(), fe.Param())
}

func describeTag(tag, param string) string {
	switch tag {
	case "required", "required_without":
		return "is required"
	case "min":
		return "must be at least " + param + " characters"
	case "max":
		return "must be at most " + param + " characters"
	case "bcryptlen":
		return fmt.Sprintf("must be at most %d bytes", hash.MaxPasswordBytes)
	case "role":
		return "must be one of: super, admin"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + param
	default:
		return "is invalid"
	}
}

func jsonName(fe validator.FieldError) string {
	param := fe.Param()
	if param == "" {
		return ""
	}
	return strings.ToLower(param[:1]) + param[1:]
}
