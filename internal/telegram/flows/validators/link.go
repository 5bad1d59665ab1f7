package validators

import (
	"regexp"
	"strings"
)

var linkSchemeRe = regexp.MustCompile(`^https?://`)

// DomainsFunc returns the hostnames accepted for a platform.
type DomainsFunc func(platform string) []string

// Link validates a target URL against the domains of the platform chosen
// earlier in the flow (data key "platform"). A platform with no known
// domains only gets the scheme check.
func Link(domains DomainsFunc) Validator {
	return func(raw string, data map[string]string) Result {
		link := strings.TrimSpace(raw)
		if !linkSchemeRe.MatchString(link) {
			return Reject(ReasonLinkScheme, nil)
		}

		allowed := domains(data["platform"])
		if len(allowed) == 0 {
			return Accept(link)
		}

		lower := strings.ToLower(link)
		for _, d := range allowed {
			if strings.Contains(lower, d) {
				return Accept(link)
			}
		}

		return Reject(ReasonLinkDomain, map[string]any{"domains": strings.Join(allowed, ", ")})
	}
}
