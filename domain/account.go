package domain

// Strategy selects how the discretionary budget is allocated across accounts.
type Strategy string

const (
	Avalanche Strategy = "avalanche" // highest APR first
	Snowball  Strategy = "snowball"  // smallest balance first
)

func (s Strategy) Valid() bool {
	return s == Avalanche || s == Snowball
}

// Account is a snapshot of one revolving credit line. The engine never
// mutates it; balances are copied into a private working set.
type Account struct {
	ID            string  `json:"id"`
	Name          string  `json:"name,omitempty"`
	Balance       float64 `json:"balance"`
	Limit         float64 `json:"limit"`
	APR           float64 `json:"apr"` // decimal fraction, 0.1999 = 19.99%
	MinPayment    float64 `json:"minPayment"`
	DueDayOfMonth int     `json:"dueDayOfMonth,omitempty"` // carried for display only
}
