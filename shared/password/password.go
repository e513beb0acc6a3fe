package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default cost for bcrypt hashing
	DefaultCost = bcrypt.DefaultCost

	placeholderLength   = 10
	placeholderAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// Hash generates a bcrypt hash of the password
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(bytes), nil
}

// Random returns a random alphanumeric string of length n.
func Random(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(placeholderAlphabet)))

	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random string: %w", err)
		}

		out[i] = placeholderAlphabet[idx.Int64()]
	}

	return string(out), nil
}

// Placeholder hashes a random secret for accounts whose credentials live with
// the identity provider. The plaintext is discarded.
func Placeholder() (string, error) {
	secret, err := Random(placeholderLength)
	if err != nil {
		return "", err
	}

	return Hash(secret)
}
