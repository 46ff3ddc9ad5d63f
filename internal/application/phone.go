package application

import "strings"

// ValidatePhoneNumber checks that phone is a leading '+' followed by one or more
// ASCII digits. The number is not otherwise interpreted.
func ValidatePhoneNumber(phone string) error {
	digits, ok := strings.CutPrefix(phone, "+")
	if !ok || digits == "" {
		return ErrInvalidPhoneNumber
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ErrInvalidPhoneNumber
		}
	}
	return nil
}
