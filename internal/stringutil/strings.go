// Package stringutil provides small string validation helpers.
package stringutil

// IsNumeric reports whether s is non-empty and consists only of ASCII
// digits. Discord snowflake IDs are decimal strings, so this catches
// pasted tokens or mentions before they reach an API call.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
