package utils

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
)

const base34Table = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ" // base34 table
const tableLen = byte(len(base34Table))

// RandBase34 generates a random base34 string of the given length
func RandBase34(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid length: %d", length)
	}

	randBytes := make([]byte, length)
	if _, err := rand.Read(randBytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i := range randBytes {
		randBytes[i] = base34Table[randBytes[i]%tableLen]
	}

	return string(randBytes), nil
}

// MaskSecret masks all but the first 4 characters of a secret
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return "*****"
	}
	return s[:4] + "*****"
}

// EnsureParent creates the parent directory of path if it doesn't exist
func EnsureParent(path string) error {
	return EnsureDir(filepath.Dir(path))
}

func EnsureDir(path string) error {
	// already exists
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.MkdirAll(path, 0o755)
}
