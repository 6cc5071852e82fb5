// Package venue maps free-text venue strings onto the fixed set of cinemas
// this project tracks. Everything outside the whitelist is out of scope.
package venue

import "strings"

// Whitelist is the ordered set of canonical venues. Order matters: a string
// containing more than one venue name resolves to the first entry listed here.
var Whitelist = []string{
	"Film Forum",
	"Metrograph",
	"IFC Center",
	"Anthology Film Archives",
}

// Canonical resolves a free-text venue string to a whitelist member by
// case-insensitive substring containment. The second return value is false
// when no whitelist name is contained; callers must reject such records.
func Canonical(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, v := range Whitelist {
		if strings.Contains(lower, strings.ToLower(v)) {
			return v, true
		}
	}
	return "", false
}
