package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMalformedHash is returned when a stored hash cannot be parsed. A wrong
// password is not an error; see VerifyPassword.
var ErrMalformedHash = errors.New("malformed password hash")

// Argon2id parameters for credential hashing.
const (
	argonMemory      uint32 = 64 * 1024
	argonIterations  uint32 = 3
	argonParallelism uint8  = 2
	argonSaltLength         = 16
	argonKeyLength   uint32 = 32
)

// HashPassword derives an Argon2id hash of password with a fresh random salt
// and returns it in PHC string format. Two calls with the same password
// produce different encodings because the salt differs.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonIterations, argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword reports whether password matches the PHC-encoded Argon2id
// hash. A mismatch returns (false, nil); a hash that cannot be parsed returns
// (false, ErrMalformedHash). The comparison is constant time in the key
// length.
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parseHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), h.salt, h.iterations, h.memory, h.parallelism, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(h.key, candidate) == 1, nil
}

type parsedHash struct {
	salt        []byte
	key         []byte
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// parseHash splits a PHC string of the form
// $argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-key>.
func parseHash(encoded string) (parsedHash, error) {
	var h parsedHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return h, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return h, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.iterations, &h.parallelism); err != nil {
		return h, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return h, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return h, ErrMalformedHash
	}

	// argon2.IDKey panics on zero parameters or an empty key, so a hash that
	// splits cleanly but carries them is still malformed.
	if len(salt) == 0 || len(key) == 0 || h.memory == 0 || h.iterations == 0 || h.parallelism == 0 {
		return h, ErrMalformedHash
	}

	h.salt = salt
	h.key = key
	return h, nil
}
