package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength      = 16
	derivedKeyLen   = 64
	kdfIterations   = 100000
	recordDelimiter = ":"
)

// HashPassword derives a storage record from a plaintext password. The record
// is the hex-encoded salt and derived key joined with ":". A fresh random salt
// is generated on every call, so hashing the same password twice yields two
// different records.
func HashPassword(password string) string {
	salt := make([]byte, saltLength)
	// crypto/rand.Read never returns an error as of Go 1.24.
	_, _ = rand.Read(salt)
	saltHex := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(password), []byte(saltHex), kdfIterations, derivedKeyLen, sha512.New)
	return saltHex + recordDelimiter + hex.EncodeToString(key)
}

// CheckPassword recomputes the derived key for the password using the salt
// embedded in the stored record and compares it to the stored key. A malformed
// record is treated as a verification failure, never an error.
func CheckPassword(password, storedRecord string) bool {
	parts := strings.Split(storedRecord, recordDelimiter)
	if len(parts) != 2 {
		return false
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	computed := pbkdf2.Key([]byte(password), []byte(parts[0]), kdfIterations, derivedKeyLen, sha512.New)
	return subtle.ConstantTimeCompare(computed, expected) == 1
}
