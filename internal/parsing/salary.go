package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/job-discovery/internal/types"
)

var (
	// $X - $Y with k/K shorthand on either side; the second symbol is optional
	salaryRangeRe = regexp.MustCompile(`[$€£]\s*([\d][\d,]*(?:\.\d+)?)\s*([kK])?\s*(?:-|–|—|to)\s*[$€£]?\s*([\d][\d,]*(?:\.\d+)?)\s*([kK])?`)
	// single amount directly after a currency symbol
	salarySingleRe = regexp.MustCompile(`[$€£]\s*([\d][\d,]*(?:\.\d+)?)\s*([kK])?`)

	currencySymbols = []struct {
		symbol string
		code   string
	}{
		{"$", "USD"},
		{"€", "EUR"},
		{"£", "GBP"},
	}
)

// ParseSalary extracts a salary range from free text. It requires a currency
// symbol; text without one (e.g. "5 years") never yields a salary.
func ParseSalary(text string) (*types.SalaryRange, bool) {
	var lo, hi float64
	var start int
	if m := salaryRangeRe.FindStringSubmatchIndex(text); m != nil {
		var ok1, ok2 bool
		loSuffix, hiSuffix := group(text, m, 2), group(text, m, 4)
		lo, ok1 = parseAmount(group(text, m, 1), loSuffix)
		hi, ok2 = parseAmount(group(text, m, 3), hiSuffix)
		if !ok1 || !ok2 {
			return nil, false
		}
		// "$160-200K": a lone trailing k covers both bounds
		if loSuffix == "" && hiSuffix != "" && lo < 1000 {
			lo *= 1000
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		start = m[0]
	} else if m := salarySingleRe.FindStringSubmatchIndex(text); m != nil {
		v, ok := parseAmount(group(text, m, 1), group(text, m, 2))
		if !ok {
			return nil, false
		}
		lo, hi = v, v
		start = m[0]
	} else {
		return nil, false
	}

	return &types.SalaryRange{
		Min:      lo,
		Max:      hi,
		Currency: currencyAt(text, start),
		Period:   salaryPeriod(text),
	}, true
}

// group returns submatch n of an index slice from FindStringSubmatchIndex
func group(text string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

// currencyAt maps the symbol opening the matched amount to its code
func currencyAt(text string, start int) string {
	for _, c := range currencySymbols {
		if strings.HasPrefix(text[start:], c.symbol) {
			return c.code
		}
	}
	return ""
}

func parseAmount(digits, suffix string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(digits, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if suffix != "" {
		v *= 1000
	}
	return v, true
}

func salaryPeriod(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hour"):
		return types.PeriodHour
	case strings.Contains(lower, "month"):
		return types.PeriodMonth
	default:
		return types.PeriodYear
	}
}
