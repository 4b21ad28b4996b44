package domain

import "regexp"

// urlPattern accepts a generic URI shape: optional scheme, optional host
// labels, a required domain with top-level suffix, optional path/query/
// fragment tail.
var urlPattern = regexp.MustCompile(`^(?i)([a-z][a-z0-9+.-]*://)?([\w-]+\.)+[a-z]{2,}(:\d+)?([/?#]\S*)?$`)

// ValidateURL reports whether a string plausibly identifies a network
// resource. It is a permissive pre-flight sanity check, not an RFC validator;
// malformed input yields false, never a panic.
func ValidateURL(raw string) bool {
	return urlPattern.MatchString(raw)
}
