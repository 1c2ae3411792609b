package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 600000
	saltLength       = 8
	keyLength        = 32
)

// HashPassword derives a salted PBKDF2-SHA256 digest of the given password.
// The digest carries its own parameters in the form
// pbkdf2:sha256:<iterations>$<salt>$<hex key>, so old digests keep verifying
// after the iteration count changes.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	encodedSalt := base64.RawURLEncoding.EncodeToString(salt)
	key := pbkdf2.Key([]byte(plain), []byte(encodedSalt), pbkdf2Iterations, keyLength, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", pbkdf2Iterations, encodedSalt, hex.EncodeToString(key)), nil
}

// CheckPassword reports whether plain matches digest. A malformed digest is a
// verification failure, never a panic or an error.
func CheckPassword(plain, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 3 {
		return false
	}

	header := strings.Split(parts[0], ":")
	if len(header) != 3 || header[0] != "pbkdf2" || header[1] != "sha256" {
		return false
	}
	iterations, err := strconv.Atoi(header[2])
	if err != nil || iterations <= 0 {
		return false
	}

	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(plain), []byte(parts[1]), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
