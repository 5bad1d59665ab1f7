package validators

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TextBetween accepts trimmed free text of minLen..maxLen characters.
func TextBetween(minLen, maxLen int) Validator {
	return func(raw string, _ map[string]string) Result {
		text := strings.TrimSpace(raw)
		n := utf8.RuneCountInString(text)

		switch {
		case n < minLen:
			return Reject(ReasonTextTooShort, map[string]any{"min": minLen})
		case n > maxLen:
			return Reject(ReasonTextTooLong, map[string]any{"max": maxLen})
		}

		return Accept(text)
	}
}

var birthdayLayouts = []string{"02/01/2006", "02-01-2006"}

var oldestBirthday = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Birthday accepts DD/MM/YYYY or DD-MM-YYYY dates in the past and stores
// them as DD/MM/YYYY.
func Birthday(now func() time.Time) Validator {
	return func(raw string, _ map[string]string) Result {
		text := strings.TrimSpace(raw)

		for _, layout := range birthdayLayouts {
			date, err := time.Parse(layout, text)
			if err != nil {
				continue
			}
			if !date.Before(now()) || date.Before(oldestBirthday) {
				return Reject(ReasonBirthdayRange, nil)
			}
			return Accept(date.Format(birthdayLayouts[0]))
		}

		return Reject(ReasonBirthdayFormat, nil)
	}
}
