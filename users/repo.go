package users

import "context"

// UserRepo is the persistence boundary for accounts. Lookups that find
// nothing return errors.ErrNotFound; Create returns errors.ErrDuplicateEmail
// when the email is taken.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// Create assigns the ID and timestamps and returns the stored record.
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, email string, patch UserPatch) (*User, error)
	UpdatePassword(ctx context.Context, user *User, passwordHash string) (*User, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, user *User) (bool, error)
}
