package bank

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

var (
	ErrCardNumber = errors.New("card number must be 13-19 digits with a valid checksum")
	ErrCardExpiry = errors.New("card expiry is invalid or in the past")
	ErrCardCVC    = errors.New("cvc must be 3 or 4 digits")
)

// ValidateCard performs the client-side checks before any bank round trip:
// digit/length check, Luhn checksum, future expiry, CVC shape.
func ValidateCard(card Card, now time.Time) error {
	number := normalizeCardNumber(card.Number)
	if len(number) < 13 || len(number) > 19 || !Luhn(number) {
		return ErrCardNumber
	}

	if !expiryValid(card.ExpiryMonth, card.ExpiryYear, now) {
		return ErrCardExpiry
	}

	cvc := strings.TrimSpace(card.CVC)
	if len(cvc) < 3 || len(cvc) > 4 || !allDigits(cvc) {
		return ErrCardCVC
	}

	return nil
}

// Luhn reports whether the digit string passes the Luhn checksum.
func Luhn(number string) bool {
	if number == "" || !allDigits(number) {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// expiryValid accepts two- or four-digit years; the card is valid through the
// end of its expiry month.
func expiryValid(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < 100 {
		year += 2000
	}
	endOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return endOfMonth.After(now)
}

func normalizeCardNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
