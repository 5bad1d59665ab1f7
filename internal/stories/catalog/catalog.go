// Package catalog holds the fixed list of platforms, services and quality
// tiers offered by the panel together with their per-unit rates.
package catalog

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var defaultRate = decimal.RequireFromString("0.5")

var platforms = []Platform{
	{Key: "instagram", Title: "Instagram", Domains: []string{"instagram.com", "www.instagram.com"}},
	{Key: "youtube", Title: "YouTube", Domains: []string{"youtube.com", "www.youtube.com", "youtu.be"}},
	{Key: "facebook", Title: "Facebook", Domains: []string{"facebook.com", "www.facebook.com", "fb.com"}},
	{Key: "telegram", Title: "Telegram", Domains: []string{"t.me", "telegram.me"}},
	{Key: "tiktok", Title: "TikTok", Domains: []string{"tiktok.com", "www.tiktok.com"}},
	{Key: "twitter", Title: "Twitter / X", Domains: []string{"twitter.com", "www.twitter.com", "x.com"}},
	{Key: "linkedin", Title: "LinkedIn", Domains: []string{"linkedin.com", "www.linkedin.com"}},
	{Key: "whatsapp", Title: "WhatsApp", Domains: []string{"chat.whatsapp.com", "wa.me"}},
}

var services = []Service{
	svc("instagram", "followers", "Followers", "0.5"),
	svc("instagram", "likes", "Likes", "0.3"),
	svc("instagram", "views", "Views", "0.1"),
	svc("instagram", "comments", "Comments", "0.8"),
	svc("instagram", "story_views", "Story Views", "0.15"),
	svc("instagram", "reel_views", "Reel Views", "0.08"),
	svc("youtube", "subscribers", "Subscribers", "2.0"),
	svc("youtube", "likes", "Likes", "0.4"),
	svc("youtube", "views", "Views", "0.05"),
	svc("youtube", "comments", "Comments", "1.0"),
	svc("youtube", "watchtime", "Watch Time", "0.2"),
	svc("facebook", "followers", "Page Followers", ""),
	svc("facebook", "likes", "Post Likes", ""),
	svc("telegram", "members", "Channel Members", ""),
	svc("telegram", "views", "Post Views", ""),
	svc("tiktok", "followers", "Followers", ""),
	svc("tiktok", "likes", "Likes", ""),
	svc("tiktok", "views", "Views", ""),
	svc("twitter", "followers", "Followers", ""),
	svc("twitter", "likes", "Likes", ""),
	svc("linkedin", "followers", "Followers", ""),
	svc("linkedin", "connections", "Connections", ""),
	svc("whatsapp", "members", "Group Members", ""),
}

var qualities = []Quality{
	{Key: "premium", Title: "Premium", Multiplier: decimal.RequireFromString("1.5")},
	{Key: "high", Title: "High", Multiplier: decimal.RequireFromString("1.25")},
	{Key: "medium", Title: "Medium", Multiplier: decimal.NewFromInt(1)},
	{Key: "standard", Title: "Standard", Multiplier: decimal.RequireFromString("0.9")},
	{Key: "basic", Title: "Basic", Multiplier: decimal.RequireFromString("0.75")},
}

// an empty rate falls back to the panel default
func svc(platform, key, title, rate string) Service {
	r := defaultRate
	if rate != "" {
		r = decimal.RequireFromString(rate)
	}
	return Service{Key: key, Platform: platform, Title: title, Rate: r}
}

// Catalog is read-only and safe for concurrent use.
type Catalog struct{}

func New() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Platforms() []Platform {
	return platforms
}

func (c *Catalog) Platform(key string) (Platform, bool) {
	return lo.Find(platforms, func(p Platform) bool { return p.Key == key })
}

func (c *Catalog) Services(platform string) []Service {
	return lo.Filter(services, func(s Service, _ int) bool { return s.Platform == platform })
}

func (c *Catalog) Service(platform, key string) (Service, bool) {
	return lo.Find(services, func(s Service) bool { return s.Platform == platform && s.Key == key })
}

func (c *Catalog) Qualities() []Quality {
	return qualities
}

func (c *Catalog) Quality(key string) (Quality, bool) {
	return lo.Find(qualities, func(q Quality) bool { return q.Key == key })
}

// Domains returns the link allow-list of a platform, nil when unknown.
func (c *Catalog) Domains(platform string) []string {
	p, ok := c.Platform(platform)
	if !ok {
		return nil
	}
	return p.Domains
}

// Price is quantity × rate × quality multiplier, rounded to paise.
func (c *Catalog) Price(service Service, quality Quality, quantity int) decimal.Decimal {
	return service.Rate.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(quality.Multiplier).
		Round(2)
}
