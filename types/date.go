// File: types/date.go
package types

import (
	"fmt"
	"regexp"
)

type pattern string

func (p pattern) String() string {
	return string(p)
}

// datePattern matches the date form the dashboard accepts: a 4-digit year
// and a month and day of 1 or 2 digits.
const datePattern pattern = `^\d{4}-(0?[1-9]|1[012])-(0?[1-9]|[12][0-9]|3[01])$`

var dateRegex = regexp.MustCompile(datePattern.String())

// IsValidDate reports whether value is a date in YYYY-MM-DD form.
func IsValidDate(value string) bool {
	return dateRegex.MatchString(value)
}

// ValidateDate returns an error when value is not a date in YYYY-MM-DD form.
func ValidateDate(value string) error {
	if !IsValidDate(value) {
		return fmt.Errorf("invalid date %q", value)
	}
	return nil
}
