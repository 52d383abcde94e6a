// Package format holds the validation and display helpers shared by the
// lead store and its callers: CPF tax IDs, phone numbers, e-mail addresses
// and elapsed durations.
package format

import "strings"

const cpfLength = 11

// Digits strips every non-digit rune from v.
func Digits(v string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, v)
}

// ValidateCPF reports whether v carries a structurally valid CPF: eleven
// digits once punctuation is removed, not all the same digit, and both check
// digits matching the weighted mod-11 computation.
func ValidateCPF(v string) bool {
	d := Digits(v)
	if len(d) != cpfLength || repeated(d) {
		return false
	}
	if cpfCheckDigit(d[:9]) != int(d[9]-'0') {
		return false
	}
	return cpfCheckDigit(d[:10]) == int(d[10]-'0')
}

// cpfCheckDigit weights the digits from len+1 down to 2. A remainder of 10
// or 11 maps to zero.
func cpfCheckDigit(digits string) int {
	sum := 0
	weight := len(digits) + 1
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 || rem == 11 {
		return 0
	}
	return rem
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

// FormatCPF renders v as XXX.XXX.XXX-XX. Input is reduced to its first
// eleven digits; anything shorter is returned as bare digits.
func FormatCPF(v string) string {
	d := truncate(Digits(v), cpfLength)
	if len(d) < cpfLength {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
