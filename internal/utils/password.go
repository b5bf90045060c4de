package utils

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrPasswordNoLetter    = errors.New("password must contain at least one letter")
	ErrPasswordNoDigit     = errors.New("password must contain at least one digit")
	ErrPasswordMatchesMail = errors.New("password must not contain your email address")
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// ValidateCustomerPassword checks a new storefront account password before it is
// sent upstream, so shoppers get the message without a round trip.
func ValidateCustomerPassword(password, email string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}

	var hasLetter, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasLetter {
		return ErrPasswordNoLetter
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}

	if local, _, ok := strings.Cut(strings.ToLower(email), "@"); ok && len(local) >= 3 {
		if strings.Contains(strings.ToLower(password), local) {
			return ErrPasswordMatchesMail
		}
	}
	return nil
}
