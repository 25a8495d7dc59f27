package aprspos

import (
	"errors"
	"strings"
)

// Base-91 digits are the printable characters '!' (0) through '{' (90)
const (
	base91Min = '!'
	base91Max = '{'
)

var (
	ErrInvalidBase91 = errors.New("invalid character in base91 sequence")
	ErrBase91Length  = errors.New("base91 sequence has wrong length")
)

// IsBase91 reports whether c is a base-91 digit
func IsBase91(c byte) bool {
	return c >= base91Min && c <= base91Max
}

// DecodeBase91 transfers a base-91 digit string to decimal
func DecodeBase91(text string) (int, error) {
	result := 0

	for i := 0; i < len(text); i++ {
		char := text[i]
		if !IsBase91(char) {
			return 0, ErrInvalidBase91
		}

		result = result*91 + int(char-base91Min)
	}

	return result, nil
}

// Base91Pair decodes exactly two base-91 digits into [0, 8281)
func Base91Pair(text string) (int, error) {
	if len(text) != 2 {
		return 0, ErrBase91Length
	}
	return DecodeBase91(text)
}

// EncodeBase91 transfers decimal to a base-91 string, left padded with '!' to width
func EncodeBase91(number int, width int) (string, error) {
	if width < 0 {
		return "", errors.New("width must be non-negative")
	}
	if number < 0 {
		return "", errors.New("expected number to be positive integer")
	}

	var digits []byte
	for temp := number; temp > 0; temp /= 91 {
		digits = append(digits, byte(temp%91)+base91Min)
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	result := string(digits)
	if len(result) < max(1, width) {
		result = strings.Repeat("!", max(1, width)-len(result)) + result
	}

	return result, nil
}
