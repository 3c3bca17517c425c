package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/jrsteele09/go-api-skeleton/token"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
)

// ClaimsValidator checks the shape of decoded claims before the subject is
// looked up: the subject must look like an email and every scope must be one
// the system recognises.
type ClaimsValidator struct {
	validScopes users.Scopes
}

func NewClaimsValidator(validScopes users.Scopes) *ClaimsValidator {
	return &ClaimsValidator{validScopes: validScopes}
}

func (v *ClaimsValidator) Validate(claims token.Claims) error {
	return validation.ValidateStruct(&claims,
		validation.Field(&claims.Subject, validation.Required, users.EmailRule),
		validation.Field(&claims.Scopes, validation.By(v.knownScopes)),
	)
}

func (v *ClaimsValidator) knownScopes(value interface{}) error {
	scopes, _ := value.([]string)
	if unknown := users.Scopes(scopes).Unknown(v.validScopes); len(unknown) > 0 {
		return errors.Errorf("unknown scopes %v", unknown)
	}
	return nil
}

// ValidateCredentials checks a login form before the store is consulted.
func ValidateCredentials(email, password string) error {
	return validation.Errors{
		"username": validation.Validate(email, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
}
