package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator validates request structs by their validate tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns a readable error for the first failing field.
func (val *Validator) Validate(obj interface{}) error {
	err := val.v.Struct(obj)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("field %s failed validation on %s", fe.Field(), fe.Tag())
	}
	return err
}
