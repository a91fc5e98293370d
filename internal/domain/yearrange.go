package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var academicYearPattern = regexp.MustCompile(`^\s*(\d{4})\s*-\s*(\d{4})\s*$`)

// YearRange is a parsed "YYYY-YYYY" academic year, half-open on End
type YearRange struct {
	Start int
	End   int
}

// ParseAcademicYear parses "YYYY-YYYY"; the end year must follow the start year.
// Multi-year ranges such as "2020-2023" are accepted.
func ParseAcademicYear(s string) (YearRange, error) {
	m := academicYearPattern.FindStringSubmatch(s)
	if m == nil {
		return YearRange{}, fmt.Errorf("academic year %q is not in YYYY-YYYY form", s)
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end <= start {
		return YearRange{}, fmt.Errorf("academic year %q must end after it starts", s)
	}
	return YearRange{Start: start, End: end}, nil
}

// Intersects reports whether two ranges overlap. Adjacent years such as
// 2022-2023 and 2023-2024 do not.
func (r YearRange) Intersects(o YearRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// String formats the range back to "YYYY-YYYY"
func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Intersects reports whether two "YYYY-YYYY" strings overlap.
// A malformed operand never intersects.
func Intersects(a, b string) bool {
	ra, err := ParseAcademicYear(a)
	if err != nil {
		return false
	}
	rb, err := ParseAcademicYear(b)
	if err != nil {
		return false
	}
	return ra.Intersects(rb)
}

// IsAcademicYear reports whether s is a well-formed academic year
func IsAcademicYear(s string) bool {
	_, err := ParseAcademicYear(s)
	return err == nil
}

// CurrentAcademicYear returns the academic year containing t; years start in September.
func CurrentAcademicYear(t time.Time) string {
	year := t.Year()
	if t.Month() < time.September {
		year--
	}
	return YearRange{Start: year, End: year + 1}.String()
}
