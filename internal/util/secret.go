package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

const minSecretLength = 32

func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateSecret returns a URL-safe random string of the given length, used to
// sign draft mode cookies.
func GenerateSecret(length int) (string, error) {
	if length < minSecretLength {
		return "", fmt.Errorf("secret length must be at least %d, got %d", minSecretLength, length)
	}

	var sb strings.Builder
	for sb.Len() < length {
		b, err := generateRandomBytes(length)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		str := base64.URLEncoding.EncodeToString(b)
		str = strings.ReplaceAll(str, "-", "")
		str = strings.ReplaceAll(str, "_", "")
		str = strings.TrimRight(str, "=")
		sb.WriteString(str)
	}

	return sb.String()[:length], nil
}
