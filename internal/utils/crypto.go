// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GeneratePaymentReference mints the reference recorded for a simulated card
// capture.
func GeneratePaymentReference() (string, error) {
	randomPart, err := GenerateRandomString(24)
	if err != nil {
		return "", err
	}
	return "pay_" + randomPart, nil
}
