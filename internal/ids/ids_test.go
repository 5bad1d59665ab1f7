package ids

import (
	"regexp"
	"testing"
	"time"
)

func TestGeneratorFormats(t *testing.T) {
	fixed := time.Unix(1700000000, 0)
	g := New(func() time.Time { return fixed })

	tests := []struct {
		name    string
		gen     func() string
		pattern string
	}{
		{name: "order id", gen: g.OrderID, pattern: `^ORD1700000000[1-9]\d{2}$`},
		{name: "ticket id", gen: g.TicketID, pattern: `^TKT1700000000[1-9]\d$`},
		{name: "referral code", gen: g.ReferralCode, pattern: `^ISP[A-Z0-9]{6}$`},
		{name: "api key", gen: g.APIKey, pattern: `^ISP-[A-Za-z0-9]{32}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			for i := 0; i < 50; i++ {
				if got := tt.gen(); !re.MatchString(got) {
					t.Fatalf("%s = %q, want match %s", tt.name, got, tt.pattern)
				}
			}
		})
	}
}

func TestAPIKeysDiffer(t *testing.T) {
	g := New(nil)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		k := g.APIKey()
		if seen[k] {
			t.Fatalf("duplicate api key %q", k)
		}
		seen[k] = true
	}
}
