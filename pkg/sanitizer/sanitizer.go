// Package sanitizer normalizes user-entered reservation and client fields
// before validation and persistence.
package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// The venue's clientele is local; numbers without a country code are tried
// against these regions in order.
var supportedRegions = []string{
	"MX",
	"US",
}

// SanitizePhone returns the E.164 form of a phone number, the input untouched
// when it is empty, or "" when the number cannot be parsed for any supported
// region.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return phone
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}

func SanitizeEmail(email string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToLower,
	}
	return p.Apply(email)
}
