package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// validateStruct runs the struct tags of in and folds every failure into a
// single common.ValidationError.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe.Field(), fe.Tag(), fe.Param()))
	}
	return &common.ValidationError{Msg: strings.Join(msgs, " ")}
}

func fieldMessage(field, tag, param string) string {
	switch tag {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters.", field, param)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
	case "email":
		return fmt.Sprintf("The %s field is not a valid e-mail address.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
