package catalog

import "github.com/shopspring/decimal"

type Platform struct {
	Key     string
	Title   string
	Domains []string
}

type Service struct {
	Key      string
	Platform string
	Title    string
	Rate     decimal.Decimal
}

type Quality struct {
	Key        string
	Title      string
	Multiplier decimal.Decimal
}
