package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"agora/backend/internal/constants"
	"agora/backend/internal/services"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return services.ValidUsername(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register username validator: %v", err))
	}
	return v
}

// validationMessage turns validator errors into one client-facing sentence
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return constants.MsgInvalidRequestBody
	}

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Tag() == "required" {
			return constants.MsgEmptyFields
		}
		fields = append(fields, fe.Field())
	}
	return fmt.Sprintf("%s: %s", constants.MsgInvalidFields, strings.Join(fields, ", "))
}
