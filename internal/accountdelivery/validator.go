package accountdelivery

import (
	"github.com/go-playground/validator/v10"
)

// ValidAccountNumber validates a 10-digit zero-padded account number.
var ValidAccountNumber validator.Func = func(fl validator.FieldLevel) bool {
	number, ok := fl.Field().Interface().(string)
	if !ok || len(number) != 10 {
		return false
	}

	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
