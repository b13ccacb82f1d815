package mrz

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nineties birth date", "930615", "1993-06-15"},
		{"recent issue date", "250101", "2025-01-01"},
		{"pivot year maps to 2000s", "300101", "2030-01-01"},
		{"year after pivot maps to 1900s", "310101", "1931-01-01"},
		{"century boundary", "000229", "2000-02-29"},
		{"late nineteen hundreds", "991231", "1999-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "12345", "1234567", "abc123", "93061A", "93 615"} {
		t.Run(fmt.Sprintf("input %q", input), func(t *testing.T) {
			_, err := FormatDate(input)
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid date format")
		})
	}
}

func TestParseExpiryDate(t *testing.T) {
	t.Run("valid date parses correctly", func(t *testing.T) {
		result, err := ParseExpiryDate("250315")
		require.NoError(t, err)
		require.Equal(t, 2025, result.Year())
		require.Equal(t, time.March, result.Month())
		require.Equal(t, 15, result.Day())
	})

	t.Run("next year stays in this century", func(t *testing.T) {
		nextYear := time.Now().AddDate(1, 0, 0)
		result, err := ParseExpiryDate(fmt.Sprintf("%02d0101", nextYear.Year()%100))
		require.NoError(t, err)
		require.Equal(t, nextYear.Year(), result.Year())
	})

	t.Run("far past expiry gets bumped a century forward", func(t *testing.T) {
		longAgo := time.Now().AddDate(-40, 0, 0)
		result, err := ParseExpiryDate(fmt.Sprintf("%02d0101", longAgo.Year()%100))
		require.NoError(t, err)
		require.Equal(t, longAgo.Year()+100, result.Year())
	})

	t.Run("wrong length fails", func(t *testing.T) {
		_, err := ParseExpiryDate("2503")
		require.Error(t, err)
	})

	t.Run("non-numeric fails", func(t *testing.T) {
		_, err := ParseExpiryDate("25er15")
		require.Error(t, err)
	})
}

func TestParseDateOfBirth(t *testing.T) {
	t.Run("valid date parses correctly", func(t *testing.T) {
		result, err := ParseDateOfBirth("930615")
		require.NoError(t, err)
		require.Equal(t, 1993, result.Year())
		require.Equal(t, time.June, result.Month())
		require.Equal(t, 15, result.Day())
	})

	t.Run("birth year in the future moves back a century", func(t *testing.T) {
		nextYear := time.Now().AddDate(1, 0, 0)
		result, err := ParseDateOfBirth(fmt.Sprintf("%02d0101", nextYear.Year()%100))
		require.NoError(t, err)
		require.Equal(t, nextYear.Year()-100, result.Year())
	})

	t.Run("recent birth year is untouched", func(t *testing.T) {
		lastYear := time.Now().AddDate(-1, 0, 0)
		result, err := ParseDateOfBirth(fmt.Sprintf("%02d0101", lastYear.Year()%100))
		require.NoError(t, err)
		require.Equal(t, lastYear.Year(), result.Year())
	})

	t.Run("wrong length fails", func(t *testing.T) {
		_, err := ParseDateOfBirth("9306155")
		require.Error(t, err)
	})
}
