// Package period implements the ISO-8601 date periods (PnYnMnWnD) used for
// doorlooptijden and archiveringstermijnen. Time components are deliberately
// unsupported: every termijn in the registry is expressed in whole days or
// coarser units, and date arithmetic must follow the calendar rather than a
// fixed number of seconds.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a calendar period. Weeks are folded into days on parse.
type Period struct {
	Years  int
	Months int
	Days   int
}

// Parse reads an ISO-8601 period of the form PnYnMnWnD. Components may be
// omitted but at least the leading P must be present.
func Parse(s string) (Period, error) {
	if len(s) < 1 || s[0] != 'P' {
		return Period{}, fmt.Errorf("invalid period %q: missing P designator", s)
	}
	rest := s[1:]
	if rest == "" {
		return Period{}, fmt.Errorf("invalid period %q: no components", s)
	}
	if strings.ContainsRune(rest, 'T') {
		return Period{}, fmt.Errorf("invalid period %q: time components are not supported", s)
	}

	var p Period
	seen := map[byte]bool{}
	num := ""
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c >= '0' && c <= '9' {
			num += string(c)
			continue
		}
		if num == "" {
			return Period{}, fmt.Errorf("invalid period %q: designator %q without value", s, string(c))
		}
		if seen[c] {
			return Period{}, fmt.Errorf("invalid period %q: duplicate designator %q", s, string(c))
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
		}
		switch c {
		case 'Y':
			p.Years = n
		case 'M':
			p.Months = n
		case 'W':
			p.Days += n * 7
		case 'D':
			p.Days += n
		default:
			return Period{}, fmt.Errorf("invalid period %q: unknown designator %q", s, string(c))
		}
		seen[c] = true
		num = ""
	}
	if num != "" {
		return Period{}, fmt.Errorf("invalid period %q: trailing value %q", s, num)
	}
	return p, nil
}

// MustParse is Parse for literals in tests and seed data.
func MustParse(s string) Period {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsZero reports whether no component is set.
func (p Period) IsZero() bool {
	return p.Years == 0 && p.Months == 0 && p.Days == 0
}

// AddTo adds the period to a date using calendar arithmetic. Overflow
// normalizes the way the standard library does: adding one month to
// January 31 yields March 2 or 3.
func (p Period) AddTo(t time.Time) time.Time {
	return t.AddDate(p.Years, p.Months, p.Days)
}

// String renders the canonical PnYnMnD form. The zero period is "P0D".
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}
	var b strings.Builder
	b.WriteByte('P')
	if p.Years != 0 {
		fmt.Fprintf(&b, "%dY", p.Years)
	}
	if p.Months != 0 {
		fmt.Fprintf(&b, "%dM", p.Months)
	}
	if p.Days != 0 {
		fmt.Fprintf(&b, "%dD", p.Days)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler so periods serialize as their
// ISO-8601 string in JSON payloads.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
