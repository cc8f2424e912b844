package models

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses raw in the context of defaultRegion (ISO 3166 code,
// e.g. "RS") and returns it in E.164 form. Blank input returns "".
func NormalizePhone(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))

	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("phone must be a valid phone number")
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", fmt.Errorf("phone must be a valid phone number")
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}
