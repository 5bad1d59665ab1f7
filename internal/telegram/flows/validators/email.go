package validators

import (
	"regexp"
	"strings"
)

const (
	maxEmailLocal  = 64
	maxEmailLength = 254
)

var (
	emailLocalRe  = regexp.MustCompile(`^[a-zA-Z0-9._+-]+$`)
	emailDomainRe = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)
)

var suspiciousDomainWords = []string{
	"temp", "fake", "test", "spam", "junk", "trash", "garbage", "dummy",
	"example", "sample", "demo", "trial", "invalid", "noemail", "noreply",
	"donotreply", "bounce", "reject",
}

var trustedDomains = map[string]struct{}{
	"gmail.com": {}, "yahoo.com": {}, "outlook.com": {}, "hotmail.com": {},
	"live.com": {}, "icloud.com": {}, "me.com": {}, "mac.com": {}, "aol.com": {},
	"mail.com": {}, "yahoo.co.in": {}, "rediffmail.com": {}, "sify.com": {},
	"in.com": {}, "indiatimes.com": {}, "sancharnet.in": {}, "dataone.in": {},
	"edu": {}, "ac.in": {}, "edu.in": {}, "student.com": {}, "company.com": {},
	"business.com": {}, "work.com": {}, "protonmail.com": {}, "tutanota.com": {},
	"zoho.com": {}, "yandex.com": {}, "mail.ru": {}, "gmx.com": {}, "web.de": {},
	"t-online.de": {},
}

var validTLDs = []string{
	"com", "org", "net", "edu", "gov", "mil", "int",
	"in", "co.in", "net.in", "org.in", "gov.in", "ac.in", "edu.in",
	"us", "uk", "ca", "au", "de", "fr", "jp", "cn", "br", "mx",
	"io", "co", "me", "tv", "cc", "ly", "tk", "ml", "cf", "ga",
}

var domainTypos = map[string]string{
	"gmai.com":    "gmail.com",
	"gmial.com":   "gmail.com",
	"gmaill.com":  "gmail.com",
	"gmailcom":    "gmail.com",
	"yahooo.com":  "yahoo.com",
	"yahho.com":   "yahoo.com",
	"yaho.com":    "yahoo.com",
	"outlok.com":  "outlook.com",
	"outllok.com": "outlook.com",
	"hotmial.com": "hotmail.com",
	"hotmailcom":  "hotmail.com",
}

// Email validates an address and returns it lowercased. Common provider
// typos are rejected with a suggested correction in the "suggestion" param.
func Email(raw string, _ map[string]string) Result {
	email := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))

	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return Reject(ReasonEmailFormat, nil)
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return Reject(ReasonEmailMultipleAt, nil)
	}
	local, domain := parts[0], parts[1]

	if len(local) < 1 || len(local) > maxEmailLocal {
		return Reject(ReasonEmailLocalLength, map[string]any{"max": maxEmailLocal})
	}
	if len(domain) < 3 || !strings.Contains(domain, ".") {
		return Reject(ReasonEmailDomain, nil)
	}

	labels := strings.Split(domain, ".")
	if len(labels[len(labels)-1]) < 2 {
		return Reject(ReasonEmailTLD, nil)
	}
	if len(labels[len(labels)-2]) < 2 {
		return Reject(ReasonEmailMainDomain, nil)
	}

	for _, word := range suspiciousDomainWords {
		if strings.Contains(domain, word) {
			return Reject(ReasonEmailSuspicious, nil)
		}
	}

	if !knownProvider(domain) {
		return Reject(ReasonEmailProvider, nil)
	}

	if !emailLocalRe.MatchString(local) {
		return Reject(ReasonEmailLocalChars, nil)
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return Reject(ReasonEmailLocalDots, nil)
	}
	if strings.Contains(local, "..") {
		return Reject(ReasonEmailDoubleDots, nil)
	}
	if len(email) > maxEmailLength {
		return Reject(ReasonEmailTooLong, map[string]any{"max": maxEmailLength})
	}

	if fixed, ok := domainTypos[domain]; ok {
		return Reject(ReasonEmailTypo, map[string]any{"suggestion": local + "@" + fixed})
	}

	if !emailDomainRe.MatchString(domain) {
		return Reject(ReasonEmailDomainChars, nil)
	}

	return Accept(email)
}

func knownProvider(domain string) bool {
	if _, ok := trustedDomains[domain]; ok {
		return true
	}
	for _, tld := range validTLDs {
		if strings.HasSuffix(domain, "."+tld) {
			return true
		}
	}
	return false
}
