package crypto

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const resetCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ResetCodeLength keeps codes short enough to retype from an email.
const ResetCodeLength = 5

// NewResetCode generates an uppercase alphanumeric password-recovery code
// from a cryptographically secure source. Codes are not checked for
// uniqueness across accounts: recovery always looks up the (email, code)
// pair together, so collisions between accounts are harmless.
func NewResetCode() (string, error) {
	return gonanoid.Generate(resetCodeAlphabet, ResetCodeLength)
}
