package mrz

import (
	"fmt"
	"time"
)

const yymmddLayout = "060102" // "06" year, "01" month, "02" day

// FormatDate expands a YYMMDD field into ISO YYYY-MM-DD form. Two-digit
// years at or below 30 land in the 2000s, the rest in the 1900s. Input must
// be exactly six digits.
func FormatDate(yymmdd string) (string, error) {
	if len(yymmdd) != 6 {
		return "", fmt.Errorf("invalid date format: %s", yymmdd)
	}
	for i := 0; i < len(yymmdd); i++ {
		if yymmdd[i] < '0' || yymmdd[i] > '9' {
			return "", fmt.Errorf("invalid date format: %s", yymmdd)
		}
	}

	year := int(yymmdd[0]-'0')*10 + int(yymmdd[1]-'0')
	if year <= 30 {
		year += 2000
	} else {
		year += 1900
	}
	return fmt.Sprintf("%d-%s-%s", year, yymmdd[2:4], yymmdd[4:6]), nil
}

// ParseExpiryDate turns a YYMMDD expiry field into a time.Time. Expiry dates
// live in the near future, so a parse result more than 30 years in the past
// means the century was wrong and gets bumped forward.
func ParseExpiryDate(yymmdd string) (time.Time, error) {
	if len(yymmdd) != 6 {
		return time.Time{}, fmt.Errorf("invalid date format: %s", yymmdd)
	}

	parsed, err := time.Parse(yymmddLayout, yymmdd)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing date: %w", err)
	}

	if parsed.Before(time.Now().AddDate(-30, 0, 0)) {
		parsed = parsed.AddDate(100, 0, 0)
	}
	return parsed, nil
}

// ParseDateOfBirth turns a YYMMDD birth field into a time.Time. time.Parse
// maps two-digit years 00-68 into the 2000s, which can land a birth date in
// the future; a future birth date must really be 19xx and moves back a
// century.
func ParseDateOfBirth(yymmdd string) (time.Time, error) {
	if len(yymmdd) != 6 {
		return time.Time{}, fmt.Errorf("invalid date format: %s", yymmdd)
	}

	parsed, err := time.Parse(yymmddLayout, yymmdd)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing date: %w", err)
	}

	if parsed.After(time.Now()) {
		parsed = parsed.AddDate(-100, 0, 0)
	}
	return parsed, nil
}
