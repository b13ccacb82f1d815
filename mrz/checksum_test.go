package mrz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  int
	}{
		{"passport document number", "L898902C3", 6},
		{"date of birth", "740812", 2},
		{"date of expiry", "120415", 9},
		{"id card document number", "D23145890", 7},
		{"doc 9303 worked example", "AB2134<<<", 5},
		{"personal number with filler tail", "ZE184226B<<<<<", 1},
		{"all filler", "<<<<<<<<", 0},
		{"empty field", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckDigit(tt.field)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCheckDigitRejectsInvalidCharacters(t *testing.T) {
	for _, field := range []string{"AB-123", "abc123", "12 45", "A.B"} {
		t.Run(field, func(t *testing.T) {
			_, err := CheckDigit(field)
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid MRZ character")
		})
	}
}

func TestValidateCheckDigit(t *testing.T) {
	tests := []struct {
		name  string
		field string
		check byte
		want  bool
	}{
		{"matching digit", "L898902C3", '6', true},
		{"wrong digit", "L898902C3", '5', false},
		{"filler check reads as zero", "<<<<<<<<", '<', true},
		{"filler check against nonzero sum", "L898902C3", '<', false},
		{"non-digit check character", "740812", 'X', false},
		{"unparseable field", "74-812", '2', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidateCheckDigit(tt.field, tt.check))
		})
	}
}
