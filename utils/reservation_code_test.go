package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReservationCode(t *testing.T) {
	code, err := GenerateReservationCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeCharset, r), "unexpected character %q in code %s", r, code)
	}

	_, err = GenerateReservationCode(0)
	assert.Error(t, err)

	// collisions over a handful of draws would mean a broken generator
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := GenerateReservationCode(8)
		require.NoError(t, err)
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("  2026-01-02 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("31/08/2026")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 3, 15, 23, 45, 12, 999, loc)

	got := DateOnly(in)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, got, DateOnly(got))
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("PMS_TEST_KEY", "value")
	assert.Equal(t, "value", EnvOrDefault("PMS_TEST_KEY", "fallback"))

	t.Setenv("PMS_TEST_KEY", "  ")
	assert.Equal(t, "fallback", EnvOrDefault("PMS_TEST_KEY", "fallback"))

	assert.Equal(t, "fallback", EnvOrDefault("PMS_TEST_MISSING", "fallback"))
}
