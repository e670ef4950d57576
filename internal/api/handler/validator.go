package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type echoValidator struct {
	validate *validator.Validate
}

func NewValidator() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks struct tags and flattens all violations into a single
// error message, which the error handler returns verbatim in the JSON
// envelope.
func (ev *echoValidator) Validate(i any) error {
	err := ev.validate.Struct(i)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	parts := make([]string, len(ve))
	for i, fe := range ve {
		parts[i] = describe(fe)
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}

// describe renders one violation. Only the tags this API's request structs
// use get a tailored message.
func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s is not a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}
