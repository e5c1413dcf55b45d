package model

// Candidate is a registered instrument eligible for selection within one tier.
type Candidate struct {
	Ticker   string `json:"ticker"`
	Company  string `json:"company"`
	Exchange string `json:"exchange"`
}

// Category is a market-cap or price band. A zero bound is unbounded.
type Category struct {
	ID       string
	Label    string
	MinPrice float64
	MaxPrice float64
	MinCap   float64
	MaxCap   float64
}

// ByCap reports whether the category filters on market capitalization.
func (c Category) ByCap() bool {
	return c.MinCap > 0 || c.MaxCap > 0
}

// Fits reports whether a live price and market cap belong to this category.
// Cap-filtered categories reject candidates whose market cap is unknown.
func (c Category) Fits(price float64, marketCap *float64) bool {
	if price <= 0 {
		return false
	}
	if c.MinPrice > 0 && price < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && price > c.MaxPrice {
		return false
	}
	if !c.ByCap() {
		return true
	}
	if marketCap == nil || *marketCap <= 0 {
		return false
	}
	if c.MinCap > 0 && *marketCap < c.MinCap {
		return false
	}
	if c.MaxCap > 0 && *marketCap >= c.MaxCap {
		return false
	}
	return true
}
