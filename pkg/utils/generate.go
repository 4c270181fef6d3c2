package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

func GenerateUUIDString() string {
	return uuid.New().String()
}

// GenerateVerificationCode returns a 64-character hex token (256 bits of
// entropy), so collisions and guessing are not a practical concern at the
// expected identity volume.
func GenerateVerificationCode() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure means the platform RNG is broken; two UUIDs
		// fill the 32 bytes so the code keeps its 64-hex-char shape.
		a, b := uuid.New(), uuid.New()
		copy(buf[:16], a[:])
		copy(buf[16:], b[:])
	}
	return hex.EncodeToString(buf)
}

// GenerateLockedPassword returns random plaintext for credentials created
// without a caller-supplied password. Hashing it locks the account until the
// verification-code flow sets a real password.
func GenerateLockedPassword() string {
	return GenerateVerificationCode()
}
