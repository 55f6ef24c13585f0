package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"agora/backend/internal/constants"

	"golang.org/x/crypto/bcrypt"
)

const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSalt returns a random alphanumeric salt of constants.SaltLength characters
func NewSalt() (string, error) {
	buf := make([]byte, constants.SaltLength)
	max := big.NewInt(int64(len(saltAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate salt: %w", err)
		}
		buf[i] = saltAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// HashPassword hashes password+salt with bcrypt
func HashPassword(password, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password+salt), constants.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(password, salt, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+salt)) == nil
}
