package validators

import (
	"strings"
	"unicode"
)

const (
	countryCode    = "+91"
	phoneLength    = 13
	maxPhoneZeros  = 5
	maxPatternSize = 5
)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// Prefixes the numbering plan keeps out of subscriber ranges.
var reservedPrefixes = map[string]struct{}{
	"60": {}, "61": {}, "62": {}, "63": {}, "64": {}, "65": {},
	"90": {}, "91": {}, "92": {}, "93": {}, "94": {}, "95": {},
}

var fakeNumbers = map[string]struct{}{
	"7000000000": {}, "8000000000": {}, "9000000000": {},
	"7111111111": {}, "8111111111": {}, "9111111111": {},
	"7777777777": {}, "8888888888": {}, "9999999999": {},
	"6666666666": {}, "7123456789": {}, "8123456789": {},
}

// Phone validates a typed mobile number. Accepted values are normalized to
// "+91" followed by ten digits.
func Phone(raw string, _ map[string]string) Result {
	phone := phoneSeparators.Replace(strings.TrimSpace(raw))
	if phone == "" {
		return Reject(ReasonPhoneEmpty, nil)
	}

	for _, r := range phone {
		if unicode.IsLetter(r) {
			return Reject(ReasonPhoneLetters, nil)
		}
	}

	if !strings.HasPrefix(phone, countryCode) {
		// a bare ten digit body still gets the specific reason first
		if len(phone) == phoneLength-len(countryCode) && allDigits(phone) {
			if reason := bodyReason(phone); reason != "" {
				return Reject(reason, nil)
			}
		}
		return Reject(ReasonPhoneCountryCode, nil)
	}
	if len(phone) != phoneLength {
		return Reject(ReasonPhoneLength, nil)
	}

	digits := phone[len(countryCode):]
	if !allDigits(digits) {
		return Reject(ReasonPhoneNotDigits, nil)
	}
	if reason := bodyReason(digits); reason != "" {
		return Reject(reason, nil)
	}

	return Accept(phone)
}

// bodyReason runs the fraud heuristics over the ten subscriber digits and
// returns the first matching rejection reason.
func bodyReason(digits string) string {
	switch {
	case strings.Count(digits, digits[:1]) == len(digits):
		return ReasonPhoneSameDigits
	case digits == "1234567890" || digits == "0123456789":
		return ReasonPhoneSequential
	case digits[0] < '6':
		return ReasonPhoneFirstDigit
	case strings.Count(digits, "0") >= maxPhoneZeros:
		return ReasonPhoneZeros
	case repeatsPattern(digits):
		return ReasonPhonePattern
	}

	if _, ok := reservedPrefixes[digits[:2]]; ok {
		return ReasonPhoneReserved
	}
	if _, ok := fakeNumbers[digits]; ok {
		return ReasonPhoneFake
	}
	return ""
}

// repeatsPattern reports whether digits is a short segment repeated at least
// three times, like 7878787878.
func repeatsPattern(digits string) bool {
	for size := 1; size <= maxPatternSize; size++ {
		if len(digits) < size*3 {
			break
		}
		seg := digits[:size]
		full := strings.Repeat(seg, len(digits)/size+1)[:len(digits)]
		if digits == full {
			return true
		}
	}
	return false
}

// ContactPhone validates a number shared through the contact button. Only the
// requester's own contact is accepted.
func ContactPhone(requesterID, contactUserID int64, phone string) Result {
	if contactUserID != requesterID {
		return Reject(ReasonContactNotOwn, nil)
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Reject(ReasonContactEmptyPhone, nil)
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	return Accept(phone)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
