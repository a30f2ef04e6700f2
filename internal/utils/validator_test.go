// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordFixture struct {
	Password string `validate:"strong_password"`
}

type phoneFixture struct {
	Phone string `validate:"phone"`
}

func TestStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordFixture{Password: "Aa1!aaaa"}))

	for _, weak := range []string{"short1!", "alllower1!", "ALLUPPER1!", "NoNumbers!", "NoSpecial1"} {
		assert.Error(t, ValidateStruct(&passwordFixture{Password: weak}), weak)
	}
}

func TestPhoneValidation(t *testing.T) {
	for _, ok := range []string{"+91 98000 00000", "098765432", "98-76-54-321", ""} {
		assert.NoError(t, ValidateStruct(&phoneFixture{Phone: ok}), ok)
	}

	for _, bad := range []string{"abc", "12345", "+", "1234567890123456789012"} {
		assert.Error(t, ValidateStruct(&phoneFixture{Phone: bad}), bad)
	}
}

func TestGetValidationErrors(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=2"`
	}

	errs := GetValidationErrors(ValidateStruct(&form{Email: "nope", Name: ""}))
	assert.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "Invalid email format", errs[0].Message)

	assert.Empty(t, GetValidationErrors(ValidateStruct(&form{Email: "a@b.example", Name: "ok"})))
}
