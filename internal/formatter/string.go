package formatter

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhone parses a phone number and returns it in E164 form. The
// region is an ISO 3166-1 alpha-2 code used when the number has no
// leading +; pass "" for numbers already in international form.
func FormatPhone(phone, region string) (string, error) {
	if region == "" {
		region = "ZZ"
	}
	num, err := phonenumbers.Parse(phone, strings.ToUpper(region))
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
