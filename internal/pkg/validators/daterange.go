package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// EndAfterStartValidation validates that a time field lies strictly after the
// StartDate field on the same struct. Used for lease periods.
func EndAfterStartValidation(fl validator.FieldLevel) bool {
	end, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	startField := fl.Parent().FieldByName("StartDate")
	if !startField.IsValid() {
		return false
	}
	start, ok := startField.Interface().(time.Time)
	if !ok {
		return false
	}

	return end.After(start)
}
