package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is a live quote snapshot. Any numeric field may be absent.
type Quote struct {
	Symbol              string
	Price               *float64
	ChangePct           *float64
	Volume              *float64
	PreviousClose       *float64
	Open                *float64
	MarketCap           *float64
	SharesOutstanding   *float64
	AvgVolume3Month     *float64
	AvgVolume10Day      *float64
	FloatShares         *float64
	ShortPercentOfFloat *float64
	SharesShort         *float64
	PreMarketVolume     *float64
	CompanyName         string
	Exchange            string
}

// Float returns a pointer to v. Handy for building quotes and optional fields.
func Float(v float64) *float64 { return &v }
