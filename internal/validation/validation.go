// Package validation holds the request-level input checks shared by the
// HTTP handlers.
package validation

import (
	"fmt"
	"regexp"
	"time"
)

const periodLayout = "2006-01"

var (
	repoNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9]){0,38}$`)
)

// RepoName reports whether a repository identifier has the owner/name form.
func RepoName(name string) bool {
	return repoNamePattern.MatchString(name)
}

// Username reports whether a string is a well-formed GitHub username.
func Username(name string) bool {
	return usernamePattern.MatchString(name)
}

// Period reports whether a date string has the zero-padded "YYYY-MM" form.
func Period(date string) bool {
	if date == "" {
		return false
	}
	_, err := time.Parse(periodLayout, date)
	return err == nil
}

// MetricsList checks every metric against the supported vocabulary and
// returns the first unsupported name, if any.
func MetricsList(metrics []string, supported func(string) bool) (string, bool) {
	if len(metrics) == 0 {
		return "", false
	}
	for _, m := range metrics {
		if !supported(m) {
			return m, false
		}
	}
	return "", true
}

// TimeRange validates an optional start/end pair: both "YYYY-MM", start not
// after end, and a span of at most maxMonths. Empty bounds are allowed.
func TimeRange(startDate, endDate string, maxMonths int) error {
	if startDate == "" || endDate == "" {
		if startDate != "" && !Period(startDate) {
			return fmt.Errorf("invalid start_date format, expected YYYY-MM")
		}
		if endDate != "" && !Period(endDate) {
			return fmt.Errorf("invalid end_date format, expected YYYY-MM")
		}
		return nil
	}

	start, err := time.Parse(periodLayout, startDate)
	if err != nil {
		return fmt.Errorf("invalid start_date format, expected YYYY-MM")
	}
	end, err := time.Parse(periodLayout, endDate)
	if err != nil {
		return fmt.Errorf("invalid end_date format, expected YYYY-MM")
	}

	if start.After(end) {
		return fmt.Errorf("start date must be before end date")
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months > maxMonths {
		return fmt.Errorf("time range cannot exceed %d months", maxMonths)
	}
	return nil
}

// PositiveInt validates a bounded positive integer parameter.
func PositiveInt(value int, fieldName string, max int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > max {
		return fmt.Errorf("%s cannot exceed %d", fieldName, max)
	}
	return nil
}
