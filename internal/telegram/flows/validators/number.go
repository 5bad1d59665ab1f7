package validators

import (
	"strconv"
	"strings"
)

// IntBetween accepts a whole number in [minValue, maxValue].
func IntBetween(minValue, maxValue int) Validator {
	return func(raw string, _ map[string]string) Result {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Reject(ReasonNumberInvalid, nil)
		}

		switch {
		case n < minValue:
			return Reject(ReasonNumberTooSmall, map[string]any{"min": minValue})
		case n > maxValue:
			return Reject(ReasonNumberTooLarge, map[string]any{"max": maxValue})
		}

		return Accept(strconv.Itoa(n))
	}
}
