// Package phone normalises owner contact numbers.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalize formats raw as E.164 when it parses as a valid number, using region
// for numbers without a country prefix. Anything else is returned trimmed but
// otherwise untouched, so free-form legacy values survive.
func Normalize(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
