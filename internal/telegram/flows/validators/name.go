package validators

import (
	"strings"
	"unicode/utf8"
)

const (
	minCustomName  = 2
	maxCustomName  = 6
	minProfileName = 2
	maxProfileName = 50
)

// CustomName is the short display name typed while creating an account.
func CustomName(raw string, _ map[string]string) Result {
	return nameBetween(raw, minCustomName, maxCustomName)
}

// ProfileName is the name typed when editing account details.
func ProfileName(raw string, _ map[string]string) Result {
	return nameBetween(raw, minProfileName, maxProfileName)
}

func nameBetween(raw string, minLen, maxLen int) Result {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)

	switch {
	case n < minLen:
		return Reject(ReasonNameTooShort, map[string]any{"min": minLen})
	case n > maxLen:
		return Reject(ReasonNameTooLong, map[string]any{"max": maxLen})
	}

	return Accept(name)
}
