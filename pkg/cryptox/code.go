package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// VerificationCodeLength is the number of digits in an email verification code.
const VerificationCodeLength = 6

// GenerateVerificationCode returns a random numeric code of the given length.
// The first digit may be zero, so the code must be handled as a string.
func GenerateVerificationCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("cryptox: code length must be positive, got %d", length)
	}

	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("cryptox: failed to generate verification code: %w", err)
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

// CompareCodes reports whether two short codes are equal in constant time.
func CompareCodes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
