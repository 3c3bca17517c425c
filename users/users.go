package users

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/internal/utils"
	"github.com/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmailRule is shared by every payload that carries an email address.
var EmailRule = validation.Match(emailPattern).Error("must be a valid email address")

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"` // never serialize
	Scopes       Scopes    `json:"scopes"`
	Disabled     bool      `json:"disabled"`
	Superuser    bool      `json:"superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCreate is the input for creating an account. Password is plaintext and
// is hashed before anything reaches a store.
type UserCreate struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Scopes    Scopes `json:"scopes"`
	Disabled  *bool  `json:"disabled"` // nil means disabled
	Superuser bool   `json:"superuser"`
}

// UserUpdate changes only the non-nil fields of the account identified by Email.
type UserUpdate struct {
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	Password  *string `json:"password"`
	Scopes    *Scopes `json:"scopes"`
	Disabled  *bool   `json:"disabled"`
	Superuser *bool   `json:"superuser"`
}

// UserPatch is the store level form of UserUpdate, with the password already hashed.
type UserPatch struct {
	Name         *string
	PasswordHash *string
	Scopes       *Scopes
	Disabled     *bool
	Superuser    *bool
}

func (c UserCreate) Validate(allowed Scopes) error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, EmailRule),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.Scopes, validation.By(scopesAllowed(allowed))),
	)
	if err != nil {
		return errors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

func (u UserUpdate) Validate(allowed Scopes) error {
	err := validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, EmailRule),
		validation.Field(&u.Password, validation.NilOrNotEmpty),
		validation.Field(&u.Scopes, validation.By(scopesAllowed(allowed))),
	)
	if err != nil {
		return errors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

func scopesAllowed(allowed Scopes) validation.RuleFunc {
	return func(value interface{}) error {
		var scopes Scopes
		switch v := value.(type) {
		case Scopes:
			scopes = v
		case *Scopes:
			if v == nil {
				return nil
			}
			scopes = *v
		default:
			return nil
		}
		if unknown := scopes.Unknown(allowed); len(unknown) > 0 {
			return errors.Errorf("unknown scopes: %s", strings.Join(unknown, ", "))
		}
		return nil
	}
}

// NewUser builds the record stored for c. Defaults: disabled, and the
// "unauthorized" scope when none were given.
func NewUser(c UserCreate, passwordHash string) *User {
	scopes := NewScopes(c.Scopes...)
	if len(scopes) == 0 {
		scopes = NewScopes(ScopeUnauthorized)
	}
	return &User{
		Email:        strings.TrimSpace(c.Email),
		Name:         c.Name,
		PasswordHash: passwordHash,
		Scopes:       scopes,
		Disabled:     utils.ValueOr(c.Disabled, true),
		Superuser:    c.Superuser,
	}
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.PasswordHash == nil && p.Scopes == nil && p.Disabled == nil && p.Superuser == nil
}

// Apply copies the set fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Scopes != nil {
		u.Scopes = NewScopes(*p.Scopes...)
	}
	if p.Disabled != nil {
		u.Disabled = *p.Disabled
	}
	if p.Superuser != nil {
		u.Superuser = *p.Superuser
	}
}

func (u *User) IsActive() bool {
	return !u.Disabled
}

// HasScopes reports whether the account holds every required scope.
func (u *User) HasScopes(required ...string) bool {
	return u.Scopes.Contains(required...)
}

// Clone returns a copy that shares no slices with u.
func (u *User) Clone() *User {
	c := *u
	c.Scopes = append(Scopes(nil), u.Scopes...)
	return &c
}
