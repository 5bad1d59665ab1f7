// Package ids generates public identifiers for orders, tickets and accounts.
package ids

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	mixedAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Generator produces identifiers. The zero value is not usable, use New.
type Generator struct {
	now func() time.Time
}

func New(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// OrderID returns ORD<unix seconds><100..999>.
func (g *Generator) OrderID() string {
	return fmt.Sprintf("ORD%d%d", g.now().Unix(), randomInt(100, 999))
}

// TicketID returns TKT<unix seconds><10..99>.
func (g *Generator) TicketID() string {
	return fmt.Sprintf("TKT%d%d", g.now().Unix(), randomInt(10, 99))
}

// ReferralCode returns ISP followed by six upper-case letters or digits.
func (g *Generator) ReferralCode() string {
	return "ISP" + randomString(upperAlnum, 6)
}

// APIKey returns ISP- followed by 32 letters or digits.
func (g *Generator) APIKey() string {
	return "ISP-" + randomString(mixedAlnum, 32)
}

func randomInt(lo, hi int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(hi-lo+1))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return lo + n.Int64()
}

func randomString(alphabet string, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[randomInt(0, int64(len(alphabet)-1))]
	}
	return string(out)
}
