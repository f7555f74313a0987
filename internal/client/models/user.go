// Package models defines the records of the time-tracking core: the local
// user profile, the per-day clock record and the derived hour bank.
package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/meuponto/internal/common"
	"github.com/go-playground/validator/v10"
)

// User is the single local profile.
//
// Password is kept in plaintext in the local store. This is a known gap that
// is deliberately not addressed here; do not reuse a valuable password.
type User struct {
	Username           string  `json:"username" validate:"required,max=64"`
	DisplayName        string  `json:"display_name" validate:"required"`
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=6"`
	InitialHourBalance float64 `json:"initial_hour_balance"`
}

// UserPatch carries a profile edit; nil fields are left untouched.
// Username is immutable and therefore absent.
type UserPatch struct {
	DisplayName        *string
	Email              *string
	Password           *string
	InitialHourBalance *float64
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Normalize trims the text fields and lower-cases the username. The
// password is kept as typed.
func (u *User) Normalize() {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.Email = strings.TrimSpace(u.Email)
}

// Validate checks the profile rules. The returned error wraps
// common.ErrValidation and names the offending fields.
func (u *User) Validate() error {
	err := getValidator().Struct(u)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(fields, ", "))
}

// Apply returns a copy of u with the non-nil fields of p merged in.
func (u User) Apply(p UserPatch) User {
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.InitialHourBalance != nil {
		u.InitialHourBalance = *p.InitialHourBalance
	}
	return u
}
