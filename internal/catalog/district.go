package catalog

import (
	"slices"
	"strings"

	"fairprice/backend/internal/config"
)

// DistrictFunc maps an address to one of config.SeoulDistricts or config.DistrictOther.
type DistrictFunc func(address string) string

// DistrictByList scans the address for the known district names in their
// fixed order and returns the first one found.
func DistrictByList(address string) string {
	if strings.TrimSpace(address) == "" {
		return config.DistrictOther
	}
	for _, gu := range config.SeoulDistricts {
		if strings.Contains(address, gu) {
			return gu
		}
	}
	return config.DistrictOther
}

// DistrictByToken takes the second whitespace-separated token of the
// address ("서울특별시 강남구 ..."). Tokens that are not a known district
// map to config.DistrictOther.
func DistrictByToken(address string) string {
	fields := strings.Fields(address)
	if len(fields) < 2 {
		return config.DistrictOther
	}
	if slices.Contains(config.SeoulDistricts, fields[1]) {
		return fields[1]
	}
	return config.DistrictOther
}

// DistrictResolver returns the derivation for a configured strategy name.
// Unknown names get the list scan.
func DistrictResolver(strategy string) DistrictFunc {
	if strategy == config.DistrictStrategyToken {
		return DistrictByToken
	}
	return DistrictByList
}

// IsDistrict reports whether name is a known district or the "other" bucket.
func IsDistrict(name string) bool {
	return name == config.DistrictOther || slices.Contains(config.SeoulDistricts, name)
}
