package kromer

import "regexp"

var v2AddressPattern = regexp.MustCompile(`^[0-9a-z]{9}$`)

// IsV2Address reports whether address is a valid v2 wallet address: the
// configured single-character prefix followed by nine base36 characters.
func IsV2Address(address, prefix string) bool {
	if prefix == "" {
		prefix = "k"
	}
	if len(address) != len(prefix)+9 || address[:len(prefix)] != prefix {
		return false
	}
	return v2AddressPattern.MatchString(address[len(prefix):])
}
