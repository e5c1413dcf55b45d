package model

// Metrics holds the technical indicators derived for one candidate in one fetch cycle.
// Optional values are nil when the provider did not supply enough data.
type Metrics struct {
	Price             float64  `json:"price"`
	PrevClose         float64  `json:"prev_close"`
	TodayOpen         float64  `json:"today_open"`
	ChangePct         float64  `json:"change_pct"`
	MarketCap         *float64 `json:"market_cap"`
	ATRPct            float64  `json:"atr_pct"`
	RelativeVolume    float64  `json:"relative_volume"`
	RelativeVolume10d *float64 `json:"relative_volume_10d"`
	GapPct            float64  `json:"gap_pct"`
	Momentum5d        float64  `json:"momentum_5d"`
	Momentum20d       float64  `json:"momentum_20d"`
	RSI               float64  `json:"rsi"`
	VolumeTrend       float64  `json:"volume_trend"`
	PriceVsMA         float64  `json:"price_vs_ma"`
	MA                float64  `json:"ma"`
	RecentHigh        float64  `json:"recent_high"`
	RecentLow         float64  `json:"recent_low"`
	TodayVolume       float64  `json:"today_volume"`
	AvgVolume         float64  `json:"avg_volume"`

	MarketCapFmt     string `json:"market_cap_fmt"`
	AvgVolumeFmt     string `json:"avg_volume_fmt"`
	TodayVolumeFmt   string `json:"today_volume_fmt"`
	FloatFmt         string `json:"float_fmt"`
	ShortInterestFmt string `json:"short_interest_fmt"`
	PreMarketVolFmt  string `json:"premarket_vol_fmt"`
}
