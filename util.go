package fieldrules

import (
	"strconv"
	"strings"
	"unicode"
)

// splitParams splits a param into its fields.
// Fields are separated by whitespace or commas and may be wrapped in brackets,
// so "1 10" and "[1,10]" give the same result.
func splitParams(param string) []string {
	param = strings.TrimSpace(param)
	param = strings.TrimPrefix(param, leftBracket)
	param = strings.TrimSuffix(param, rightBracket)
	return strings.FieldsFunc(param, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// parseRange parses a pair of non-negative integers.
func parseRange(param string) (minLen, maxLen int, ok bool) {
	fields := splitParams(param)
	if len(fields) != 2 {
		return 0, 0, false
	}

	minLen, err := strconv.Atoi(fields[0])
	if err != nil || minLen < 0 {
		return 0, 0, false
	}

	maxLen, err = strconv.Atoi(fields[1])
	if err != nil || maxLen < 0 {
		return 0, 0, false
	}

	return minLen, maxLen, true
}
