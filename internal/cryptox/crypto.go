// Package cryptox holds the password hashing primitives used by the
// credential store.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/postbox/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated per-user salt, in bytes.
const SaltSize = 32

// PasswordHasher derives password hashes with Argon2id. The zero value is
// not usable; start from DefaultHasher.
type PasswordHasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultHasher uses the OWASP Argon2id minimum: two passes over 19 MiB with
// one lane. Every authenticated request pays for one hash, so memory per
// request stays bounded.
var DefaultHasher = PasswordHasher{
	Time:    2,
	Memory:  19 * 1024,
	Threads: 1,
	KeyLen:  32,
}

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// Hash derives the stored hash for password under salt.
func (h PasswordHasher) Hash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, h.Time, h.Memory, h.Threads, h.KeyLen)
}

// Verify recomputes the hash of candidate under salt and compares it with
// hash in constant time.
func (h PasswordHasher) Verify(hash, salt, candidate []byte) bool {
	computed := h.Hash(candidate, salt)
	defer common.WipeByteArray(computed)
	return subtle.ConstantTimeCompare(hash, computed) == 1
}
