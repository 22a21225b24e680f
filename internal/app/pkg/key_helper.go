package pkg

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// GenerateAccessKey returns a new bearer key and its prefix.
func GenerateAccessKey() (string, string, error) {
	prefix := "rk"
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}

	encoded := base32.StdEncoding.EncodeToString(bytes)
	encoded = strings.ReplaceAll(encoded, "=", "")

	return prefix + "_" + encoded, prefix, nil
}
