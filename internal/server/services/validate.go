package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/apptbook/internal/common"
)

// credentials is the validated form of a username/password pair. Neither
// field may carry the wire separator.
type credentials struct {
	UserName string `validate:"required,max=64,username"`
	Password string `validate:"required,max=128,excludesall=0x7C"`
}

// renameInput is credentials for an admin update, where an empty password
// keeps the stored one.
type renameInput struct {
	UserName string `validate:"required,max=64,username"`
	Password string `validate:"omitempty,max=128,excludesall=0x7C"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", validUsername)
	return v
}

// validUsername rejects separators used on the wire ('|' and ':') as well as
// whitespace and control characters.
func validUsername(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.ContainsAny(s, "|:") {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorValidation, err)
}
