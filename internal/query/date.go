package query

import (
	"strconv"
	"strings"
	"time"
)

// DateRange is a resolved inclusive day interval. A side with its Has flag
// unset is unbounded.
type DateRange struct {
	From    time.Time
	To      time.Time
	HasFrom bool
	HasTo   bool
}

// Contains reports whether the calendar day of t falls inside the interval.
func (r *DateRange) Contains(t time.Time) bool {
	day := Day(t)
	if r.HasFrom && day.Before(r.From) {
		return false
	}
	if r.HasTo && day.After(r.To) {
		return false
	}
	return true
}

// Day truncates t to midnight UTC, the canonical form for all date
// comparisons in the engine.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func lastDay(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// parsePoint parses a point date YYYY[-MM[-DD]]. Missing units resolve to
// the unit minimum (end=false, the from-rule) or the unit maximum
// (end=true, the to-rule), so 2025 becomes 2025-01-01 or 2025-12-31 and
// 2026-03 becomes 2026-03-01 or 2026-03-31.
func parsePoint(s string, end bool) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return time.Time{}, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		if !isDigits(p) {
			return time.Time{}, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	year := nums[0]
	if year < 1 {
		return time.Time{}, false
	}

	month := time.January
	if len(nums) >= 2 {
		if nums[1] < 1 || nums[1] > 12 {
			return time.Time{}, false
		}
		month = time.Month(nums[1])
	} else if end {
		month = time.December
	}

	var day int
	switch {
	case len(nums) == 3:
		if nums[2] < 1 || nums[2] > lastDay(year, month) {
			return time.Time{}, false
		}
		day = nums[2]
	case end:
		day = lastDay(year, month)
	default:
		day = 1
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// compileDate parses a date: clause value: a point (resolved to the full
// span of its precision) or a range a..b where either side may be absent.
func compileDate(c Clause) (*DateRange, error) {
	fail := func(reason string) error {
		return &Error{Code: CodeInvalidDate, Token: c.token.Text, Pos: c.token.Pos, Reason: reason}
	}

	if lo, hi, found := strings.Cut(c.Value, ".."); found {
		if lo == "" && hi == "" {
			return nil, fail("date range needs at least one bound")
		}
		var r DateRange
		if lo != "" {
			from, ok := parsePoint(lo, false)
			if !ok {
				return nil, fail("range start must be YYYY, YYYY-MM, or YYYY-MM-DD")
			}
			r.From, r.HasFrom = from, true
		}
		if hi != "" {
			to, ok := parsePoint(hi, true)
			if !ok {
				return nil, fail("range end must be YYYY, YYYY-MM, or YYYY-MM-DD")
			}
			r.To, r.HasTo = to, true
		}
		if r.HasFrom && r.HasTo && r.From.After(r.To) {
			return nil, fail("range start is after range end")
		}
		return &r, nil
	}

	from, okFrom := parsePoint(c.Value, false)
	to, okTo := parsePoint(c.Value, true)
	if !okFrom || !okTo {
		return nil, fail("want YYYY, YYYY-MM, or YYYY-MM-DD")
	}
	return &DateRange{From: from, To: to, HasFrom: true, HasTo: true}, nil
}
