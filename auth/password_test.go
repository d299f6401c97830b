package auth_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/codequest-dev/codequest-server/auth"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	passwords := []string{"password123", "hunter22", "p@ssw0rd with spaces", "日本語のパスワード"}

	for _, password := range passwords {
		record := auth.HashPassword(password)
		require.True(t, auth.CheckPassword(password, record), "password %q should verify against its own record", password)
	}
}

func TestCheckPasswordWrongPassword(t *testing.T) {
	record := auth.HashPassword("correct-horse-battery-staple")

	require.False(t, auth.CheckPassword("incorrect-horse-battery-staple", record))
	require.False(t, auth.CheckPassword("", record))
}

func TestHashPasswordSaltUniqueness(t *testing.T) {
	first := auth.HashPassword("password123")
	second := auth.HashPassword("password123")

	require.NotEqual(t, first, second, "two hashes of the same password must use different salts")
	require.True(t, auth.CheckPassword("password123", first))
	require.True(t, auth.CheckPassword("password123", second))
}

func TestCheckPasswordMalformedRecord(t *testing.T) {
	malformed := []string{
		"",
		"not-a-valid-record",
		"a:b:c",
		"deadbeef",
		"zz:zz", // key part is not hex
	}

	for _, record := range malformed {
		require.False(t, auth.CheckPassword("anything", record), "malformed record %q must fail verification", record)
	}
}

func TestHashPasswordRecordShape(t *testing.T) {
	record := auth.HashPassword("hunter22")

	parts := strings.Split(record, ":")
	require.Len(t, parts, 2)
	require.Len(t, parts[0], 32, "salt should be 16 bytes hex encoded")
	require.Len(t, parts[1], 128, "derived key should be 64 bytes hex encoded")

	_, err := hex.DecodeString(parts[0])
	require.NoError(t, err)
	_, err = hex.DecodeString(parts[1])
	require.NoError(t, err)

	require.True(t, auth.CheckPassword("hunter22", record))
	require.False(t, auth.CheckPassword("hunter23", record))
}
