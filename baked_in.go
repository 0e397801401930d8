package fieldrules

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// TypeTag selects the format checked by the "type" rule.
type TypeTag string

const (
	IPv4       TypeTag = "ipv4"
	IPv6       TypeTag = "ipv6"
	AnyIP      TypeTag = "anyip"
	IPv6Prefix TypeTag = "ipv6prefix"
	MACAddress TypeTag = "macaddress"
)

// DefaultPriority is the priority of the baked-in rules.
const DefaultPriority = 32

// bakedInValidators is the default set of rules copied into every instance.
var bakedInValidators = map[string]RuleFunc{
	typeTag:            typeRule,
	byteRangeLengthTag: byteRangeLengthRule,
}

// typeRule is the rule dispatching on a TypeTag param.
func typeRule() Rule {
	return Rule{
		Validate: func(value, param string) bool {
			return IsType(value, TypeTag(param))
		},
		Priority: DefaultPriority,
	}
}

// byteRangeLengthRule checks the byte length against a "min max" param.
// A malformed range fails the value.
func byteRangeLengthRule() Rule {
	return Rule{
		Validate: func(value, param string) bool {
			minLen, maxLen, ok := parseRange(param)
			return ok && HasByteLengthBetween(value, minLen, maxLen)
		},
		Priority: DefaultPriority,
	}
}

// IsType reports whether value has the format selected by tag.
// An empty value or an unknown tag never passes.
func IsType(value string, tag TypeTag) bool {
	if value == "" {
		return false
	}

	switch tag {
	case IPv4:
		return isIPv4(value)
	case IPv6:
		return isIPv6(value)
	case AnyIP:
		if isIPv4(value) {
			return true
		}
		return isIPv6(value)
	case IPv6Prefix:
		return isIPv6Prefix(value)
	case MACAddress:
		return macAddressRegex().MatchString(value)
	default:
		return false
	}
}

// IsIPv4 reports whether value is four dot separated decimal numbers in [0,255].
// Leading zeros are accepted.
func IsIPv4(value string) bool {
	return IsType(value, IPv4)
}

// IsIPv6 reports whether value is an IPv6 literal,
// optionally ending with an embedded dotted quad.
func IsIPv6(value string) bool {
	return IsType(value, IPv6)
}

// IsIPv6Prefix reports whether value is an IPv6 literal followed by /0 to /128.
func IsIPv6Prefix(value string) bool {
	return IsType(value, IPv6Prefix)
}

// IsAnyIP reports whether value is either an IPv4 or an IPv6 address.
func IsAnyIP(value string) bool {
	return IsType(value, AnyIP)
}

// IsMAC reports whether value is a colon separated MAC address (XX:XX:XX:XX:XX:XX).
func IsMAC(value string) bool {
	return IsType(value, MACAddress)
}

func isIPv4(value string) bool {
	segments := strings.Split(value, ".")
	if len(segments) != 4 {
		return false
	}

	for _, s := range segments {
		// digits only: no sign, hex or exponent forms
		if !integerRegex().MatchString(s) {
			return false
		}

		// an overflowing segment is far above 255 anyway
		if n, err := strconv.ParseUint(s, 10, 64); err != nil || n > 255 {
			return false
		}
	}

	return true
}

func isIPv6(value string) bool {
	// '$' also matches before a trailing newline in regexp2,
	// no newline can be part of an address
	if value == "" || strings.ContainsRune(value, '\n') {
		return false
	}

	ok, err := ipv6Regex().MatchString(value)
	return err == nil && ok
}

func isIPv6Prefix(value string) bool {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return false
	}

	if !ipv6PrefixLenRegex().MatchString(parts[1]) {
		return false
	}

	return isIPv6(parts[0])
}

// ByteLength returns the length of value once percent-encoded as UTF-8,
// counting every encoded triplet and every unencoded character as one unit.
// It reports false for values that cannot be encoded (invalid UTF-8).
//
// Each encoded code point yields one triplet per UTF-8 byte and each
// character left as is is a single ASCII byte, so the count is the UTF-8 length.
func ByteLength(value string) (int, bool) {
	if !utf8.ValidString(value) {
		return 0, false
	}

	return len(value), true
}

// HasByteLengthBetween reports whether minLen <= ByteLength(value) <= maxLen.
func HasByteLengthBetween(value string, minLen, maxLen int) bool {
	n, ok := ByteLength(value)
	return ok && n >= minLen && n <= maxLen
}
