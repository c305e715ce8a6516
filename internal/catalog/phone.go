package catalog

import (
	"strings"

	"fairprice/backend/internal/config"

	"github.com/ttacon/libphonenumber"
)

func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return config.PhonePlaceholder
	}
	return raw
}

// DialablePhone returns the E.164 form of a catalog phone number for tel:
// links. The placeholder and numbers that are not valid in Korea give false.
func DialablePhone(phone string) (string, bool) {
	if phone == "" || phone == config.PhonePlaceholder {
		return "", false
	}
	num, err := libphonenumber.Parse(phone, config.PhoneRegion)
	if err != nil {
		return "", false
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", false
	}
	return libphonenumber.Format(num, libphonenumber.E164), true
}
