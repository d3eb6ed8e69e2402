package client

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Checksum returns the lower case hex SHA-256 of data.
func Checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// VerifyChecksum fails when data does not hash to want. An empty want skips the check.
func VerifyChecksum(data []byte, want string) error {
	if want == "" {
		return nil
	}
	// Accept "sha256:<hex>" as published next to OCI style artifacts
	want = strings.ToLower(strings.TrimPrefix(want, "sha256:"))

	if got := Checksum(data); got != want {
		return fmt.Errorf("failed to verify archive: computed checksum '%s' doesn't match provided '%s'", got, want)
	}
	return nil
}
