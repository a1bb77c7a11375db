package reconciliation

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Distributor statements print numbers in the pt-BR convention: a space as
// the thousands separator and a comma as the decimal separator. Deductions
// carry a leading minus. Dates are DD/MM/YYYY.

var (
	datePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)

	// moneyPattern matches one locale-formatted monetary token inside a
	// line. The decimal comma is mandatory, which keeps plain integers
	// (document numbers, installment sequences) out of the match.
	moneyPattern = regexp.MustCompile(`-?\d{1,3}(?: \d{3})*,\d{2}`)
)

// ParseLocaleNumber parses a locale-formatted number. Empty or unparseable
// input yields zero: absent totals are common in partially-filled report
// sections and must not abort a parse.
func ParseLocaleNumber(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseLocaleDate returns the first DD/MM/YYYY date embedded in text, or nil
// when none is present. Callers treat nil as "unknown", never as a failure.
func ParseLocaleDate(text string) *time.Time {
	m := datePattern.FindString(text)
	if m == "" {
		return nil
	}
	t, err := time.Parse("02/01/2006", m)
	if err != nil {
		return nil
	}
	return &t
}

// localeDates returns every DD/MM/YYYY date found in text, in order.
func localeDates(text string) []time.Time {
	var out []time.Time
	for _, m := range datePattern.FindAllString(text, -1) {
		if t, err := time.Parse("02/01/2006", m); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// moneyTokens returns every locale-number token in line, in order.
func moneyTokens(line string) []string {
	return moneyPattern.FindAllString(line, -1)
}

// lastMoneyValues parses the trailing n locale-numbers of line. It returns
// false when the line carries fewer than n of them.
func lastMoneyValues(line string, n int) ([]decimal.Decimal, bool) {
	tokens := moneyTokens(line)
	if len(tokens) < n {
		return nil, false
	}
	tokens = tokens[len(tokens)-n:]
	values := make([]decimal.Decimal, n)
	for i, tok := range tokens {
		values[i] = ParseLocaleNumber(tok)
	}
	return values, true
}
