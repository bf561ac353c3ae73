package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d\.\-]`)

// ParsePercent parses "80", "80%", " 82,5 % " and digits split by spaces or NBSP/NNBSP.
// The result is not range checked.
func ParsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}
	repl := strings.NewReplacer("\u00A0", "", "\u202F", "", " ", "", "\t", "", ",", ".")
	s = repl.Replace(s)
	if rxKeepNums.MatchString(s) {
		return 0, false
	}
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
