package utils

import "regexp"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail reports whether s looks like a deliverable email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
