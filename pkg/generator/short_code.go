package generator

import (
	"crypto/rand"
	"math/big"
)

const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateSlug returns a fixed-width random identifier drawn from the
// base62 alphabet. Uniqueness is enforced by the database, not here.
func GenerateSlug(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", err
		}
		b[i] = base62Chars[n.Int64()]
	}

	return string(b), nil
}
