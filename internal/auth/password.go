package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrUnknownHash      = errors.New("unrecognised password hash format")
)

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword verifies password against a stored hash. Besides bcrypt it
// accepts werkzeug "pbkdf2:<alg>:<iterations>$<salt>$<hex>" hashes written by
// earlier deployments of the blog. Comparison is constant-time.
func CheckPassword(stored, password string) error {
	if strings.HasPrefix(stored, "pbkdf2:") {
		return checkPBKDF2(stored, password)
	}
	if strings.HasPrefix(stored, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			return ErrPasswordMismatch
		}
		return nil
	}
	return ErrUnknownHash
}

// NeedsRehash reports whether stored should be replaced by a fresh bcrypt hash.
func NeedsRehash(stored string) bool {
	return !strings.HasPrefix(stored, "$2")
}

func checkPBKDF2(stored, password string) error {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return ErrUnknownHash
	}
	method, salt, want := parts[0], parts[1], parts[2]

	args := strings.Split(method, ":")
	alg := "sha256"
	iterations := 600000
	if len(args) > 1 && args[1] != "" {
		alg = args[1]
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n <= 0 {
			return ErrUnknownHash
		}
		iterations = n
	}
	var newHash func() hash.Hash
	switch alg {
	case "sha256":
		newHash = sha256.New
	case "sha512":
		newHash = sha512.New
	default:
		return ErrUnknownHash
	}
	wantBytes, err := hex.DecodeString(want)
	if err != nil || len(wantBytes) == 0 {
		return ErrUnknownHash
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(wantBytes), newHash)
	if subtle.ConstantTimeCompare(got, wantBytes) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
