// Package transformer turns decoded cleaned rows into database-ready rows:
// monetary scrubbing, null-filling and casting for transactions, and the
// projection that derives merchants from transactions.
package transformer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AmountStatus tags the outcome of ScrubAmount.
type AmountStatus int

const (
	// AmountOK means Value holds the parsed amount.
	AmountOK AmountStatus = iota
	// AmountMissing means the cell was empty.
	AmountMissing
	// AmountMalformed means the cell had content but no parseable number
	// remained after scrubbing.
	AmountMalformed
)

func (s AmountStatus) String() string {
	switch s {
	case AmountOK:
		return "ok"
	case AmountMissing:
		return "missing"
	case AmountMalformed:
		return "malformed"
	}
	return fmt.Sprintf("AmountStatus(%d)", int(s))
}

// AmountResult is the tagged result of scrubbing one amount cell.
type AmountResult struct {
	Value  float64
	Status AmountStatus
	Raw    string
	Reason string
}

// notNumeral matches every character that is not a digit, '.' or '-'.
var notNumeral = regexp.MustCompile(`[^\d.\-]`)

// ScrubAmount strips currency symbols, separators and anything else that is
// not a digit, '.' or '-', then parses what is left. "$1,234.56" yields
// 1234.56; "N/A" is malformed; an empty cell is missing.
func ScrubAmount(raw string) AmountResult {
	if strings.TrimSpace(raw) == "" {
		return AmountResult{Status: AmountMissing, Raw: raw}
	}
	s := notNumeral.ReplaceAllString(raw, "")
	if s == "" {
		return AmountResult{Status: AmountMalformed, Raw: raw, Reason: "no digits"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return AmountResult{Status: AmountMalformed, Raw: raw, Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return AmountResult{Value: v, Status: AmountOK, Raw: raw}
}

// AmountPolicy decides what happens to a malformed amount at load time.
type AmountPolicy string

const (
	// AmountFail aborts the transactions load on the first malformed amount.
	AmountFail AmountPolicy = "fail"
	// AmountDefault loads a malformed amount as 0.0 and flags it.
	AmountDefault AmountPolicy = "default"
)

// ParseAmountPolicy validates s. The empty string selects AmountFail.
func ParseAmountPolicy(s string) (AmountPolicy, error) {
	switch p := AmountPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return AmountFail, nil
	case AmountFail, AmountDefault:
		return p, nil
	default:
		return "", fmt.Errorf("unknown amount policy %q (want %q or %q)", s, AmountFail, AmountDefault)
	}
}
