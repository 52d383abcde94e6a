package format

import "regexp"

const phoneLength = 11

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormatPhone renders a Brazilian mobile number as (XX) XXXXX-XXXX. Input is
// reduced to its first eleven digits; anything shorter is returned as bare
// digits.
func FormatPhone(v string) string {
	d := truncate(Digits(v), phoneLength)
	if len(d) < phoneLength {
		return d
	}
	return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
}

// ValidEmail performs the same shallow local@domain.tld check the lead forms use.
func ValidEmail(v string) bool {
	return emailPattern.MatchString(v)
}
