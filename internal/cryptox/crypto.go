// Package cryptox implements password hashing for the credential store:
// an argon2id key derivation over password+pepper with a per-user salt.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"golang.org/x/crypto/argon2"
)

// Default argon2id cost parameters.
const (
	DefaultTime    uint32 = 1
	DefaultMemory  uint32 = 64 * 1024
	DefaultThreads uint8  = 4
	KeyLength      uint32 = 32
)

// Params are the argon2id cost parameters.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams returns the production cost parameters.
func DefaultParams() Params {
	return Params{Time: DefaultTime, Memory: DefaultMemory, Threads: DefaultThreads}
}

// Hasher derives password digests. The pepper is a server-wide secret appended
// to every password before derivation; it never leaves the process.
type Hasher struct {
	pepper []byte
	params Params
}

// NewHasher returns a Hasher with the default cost parameters.
func NewHasher(pepper string) *Hasher {
	return NewHasherWithParams(pepper, DefaultParams())
}

// NewHasherWithParams returns a Hasher with explicit cost parameters.
// Zero fields fall back to defaults.
func NewHasherWithParams(pepper string, p Params) *Hasher {
	if p.Time == 0 {
		p.Time = DefaultTime
	}
	if p.Memory == 0 {
		p.Memory = DefaultMemory
	}
	if p.Threads == 0 {
		p.Threads = DefaultThreads
	}
	return &Hasher{pepper: []byte(pepper), params: p}
}

// RandomSalt returns n random bytes.
func (h *Hasher) RandomSalt(n int) []byte {
	return common.GenerateRandByteArray(n)
}

// Hash derives a digest of password+pepper with salt. Same inputs always give
// the same digest.
func (h *Hasher) Hash(password string, salt []byte) []byte {
	in := make([]byte, 0, len(password)+len(h.pepper))
	in = append(in, password...)
	in = append(in, h.pepper...)
	defer common.WipeByteArray(in)

	return argon2.IDKey(in, salt, h.params.Time, h.params.Memory, h.params.Threads, KeyLength)
}

// Verify reports whether password hashes to digest under salt.
func (h *Hasher) Verify(password string, salt, digest []byte) bool {
	return subtle.ConstantTimeCompare(h.Hash(password, salt), digest) == 1
}
