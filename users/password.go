package users

import (
	"encoding/base64"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/blake2b"
)

// DefaultHashCost is the bcrypt work factor used outside of tests.
const DefaultHashCost = 13

// bcrypt ignores everything past its first 72 bytes.
const maxBcryptInput = 72

// PasswordHasher hashes and checks passwords. Implementations must be safe
// for concurrent use.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	// DummyVerify burns the same time as a real Verify. It is called when
	// there is no account to check against.
	DummyVerify()
}

var _ PasswordHasher = (*Hasher)(nil)

// Hasher is a bcrypt PasswordHasher. It is immutable after NewHasher.
type Hasher struct {
	cost      int
	dummyHash []byte
}

// NewHasher returns a Hasher for the given bcrypt cost and precomputes the
// hash DummyVerify compares against.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Wrapf(apperrors.ErrInvalidConfig, "[NewHasher] bcrypt cost %d out of range", cost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, errors.Wrap(err, "[NewHasher] dummy hash")
	}
	return &Hasher{cost: cost, dummyHash: dummy}, nil
}

// Hash returns a freshly salted hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.Wrap(apperrors.ErrInvalidInput, "password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "Hasher.Hash")
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. Malformed or foreign hashes
// never match.
func (h *Hasher) Verify(plaintext, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plaintext))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Warn().Err(err).Msg("stored password hash could not be checked")
	}
	return false
}

func (h *Hasher) DummyVerify() {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte("not-the-password"))
}

func (h *Hasher) Cost() int {
	return h.cost
}

// bcryptInput passes short passwords through unchanged. Longer ones are
// digested so every byte counts and bcrypt never sees more than 72 bytes.
func bcryptInput(plaintext string) []byte {
	if len(plaintext) <= maxBcryptInput {
		return []byte(plaintext)
	}
	sum := blake2b.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
