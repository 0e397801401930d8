package fieldrules

import (
	"regexp"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	integerRegexString       = `^[0-9]+$`
	macAddressRegexString    = `(?i)^([0-9A-F]{2}:){5}([0-9A-F]{2})$`
	ipv6PrefixLenRegexString = `^(\d|[1-9]\d|1[0-1]\d|12[0-8])$`
	// http://home.deds.nl/~aeron/regex/
	// Relies on lookaheads and on backreferences to groups that may not have
	// participated, so it is evaluated by regexp2 in ECMAScript mode.
	ipv6RegexString = `^((?=.*::)(?!.*::.+::)(::)?([\dA-F]{1,4}:(:|\b)|){5}|([\dA-F]{1,4}:){6})((([\dA-F]{1,4}((?!\3)::|:\b|$))|(?!\2\3)){2}|(((2[0-4]|1\d|[1-9])?\d|25[0-5])\.?\b){4})$`
)

// ipv6MatchTimeout bounds a single IPv6 match; a timed out match is a failure.
const ipv6MatchTimeout = 100 * time.Millisecond

var (
	integerRegex       = lazyRegexCompile(integerRegexString)
	macAddressRegex    = lazyRegexCompile(macAddressRegexString)
	ipv6PrefixLenRegex = lazyRegexCompile(ipv6PrefixLenRegexString)
	ipv6Regex          = lazyRegexp2Compile(ipv6RegexString, regexp2.ECMAScript|regexp2.IgnoreCase, ipv6MatchTimeout)
)

func lazyRegexCompile(str string) func() (regex *regexp.Regexp) {
	var regex *regexp.Regexp
	var once sync.Once
	return func() *regexp.Regexp {
		once.Do(func() {
			regex = regexp.MustCompile(str)
		})
		return regex
	}
}

func lazyRegexp2Compile(str string, opts regexp2.RegexOptions, timeout time.Duration) func() *regexp2.Regexp {
	var regex *regexp2.Regexp
	var once sync.Once
	return func() *regexp2.Regexp {
		once.Do(func() {
			regex = regexp2.MustCompile(str, opts)
			regex.MatchTimeout = timeout
		})
		return regex
	}
}
