package mrz

import "fmt"

// Check digit weights cycle over the field, per ICAO Doc 9303 part 3.
var checkWeights = [3]int{7, 3, 1}

// CheckDigit computes the check digit for an MRZ field. Digits keep their
// face value, letters map A=10 through Z=35, and the filler '<' counts as 0.
// Values are weighted 7-3-1 cyclically, summed, and reduced mod 10.
func CheckDigit(field string) (int, error) {
	sum := 0
	for i := 0; i < len(field); i++ {
		value, err := charValue(field[i])
		if err != nil {
			return 0, err
		}
		sum += value * checkWeights[i%3]
	}
	return sum % 10, nil
}

// ValidateCheckDigit reports whether the claimed check digit matches the
// computed one. A filler '<' in the check position reads as 0. Unparseable
// input in either argument validates false rather than erroring out.
func ValidateCheckDigit(field string, check byte) bool {
	want, err := CheckDigit(field)
	if err != nil {
		return false
	}

	switch {
	case check == '<':
		return want == 0
	case check >= '0' && check <= '9':
		return want == int(check-'0')
	}
	return false
}

func charValue(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'A' && c <= 'Z':
		return int(c) - 55, nil
	case c == '<':
		return 0, nil
	}
	return 0, fmt.Errorf("invalid MRZ character %q", c)
}
