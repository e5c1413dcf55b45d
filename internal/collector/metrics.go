package collector

import (
	"HirschPicks/internal/calculator"
	"HirschPicks/internal/model"
)

const (
	atrPeriod     = 14
	rsiPeriod     = 14
	rangeLookback = 20
)

// ComputeMetrics derives the indicator set for one candidate from its daily bars and optional quote.
// It reports false when fewer than two usable bars exist or no positive price can be established.
func ComputeMetrics(bars []model.OHLCV, quote *model.Quote) (*model.Metrics, bool) {
	bars = usableBars(bars)
	if len(bars) < 2 {
		return nil, false
	}
	if quote == nil {
		quote = &model.Quote{}
	}

	latest := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	price := positiveOr(quote.Price, latest.Close)
	if price <= 0 {
		return nil, false
	}
	prevClose := positiveOr(quote.PreviousClose, prev.Close)
	todayOpen := positiveOr(quote.Open, latest.Open)
	if todayOpen <= 0 {
		todayOpen = price
	}

	todayVolume := nonNegativeOr(quote.Volume, latest.Volume)
	avgVolume := positiveOr(quote.AvgVolume3Month, positiveOr(quote.AvgVolume10Day, calculator.HistoricalAvgVolume(bars)))
	if avgVolume <= 0 {
		avgVolume = 1
	}

	changePct := calculator.PercentFrom(prevClose, price)
	if quote.ChangePct != nil {
		changePct = *quote.ChangePct
	}

	rsi, _ := calculator.CalculateRSI(bars, rsiPeriod)
	ma := calculator.TrendAverage(bars, price)
	high, low, _ := calculator.CalculateRecentRange(bars, rangeLookback)

	m := &model.Metrics{
		Price:          calculator.Round(price, 2),
		PrevClose:      calculator.Round(prevClose, 2),
		TodayOpen:      calculator.Round(todayOpen, 2),
		ChangePct:      calculator.Round(changePct, 2),
		MarketCap:      marketCap(quote, price),
		ATRPct:         calculator.Round(calculator.CalculateATR(bars, atrPeriod)/price*100, 2),
		RelativeVolume: calculator.Round(calculator.CalculateRelativeVolume(todayVolume, avgVolume), 2),
		GapPct:         calculator.Round(calculator.CalculateGap(todayOpen, prevClose), 2),
		Momentum5d:     calculator.Round(calculator.CalculateMomentum(bars, 5, price), 2),
		Momentum20d:    calculator.Round(calculator.CalculateMomentum(bars, 20, price), 2),
		RSI:            calculator.Round(rsi, 1),
		VolumeTrend:    calculator.Round(calculator.CalculateVolumeTrend(bars), 2),
		PriceVsMA:      calculator.Round(calculator.PercentFrom(ma, price), 2),
		MA:             calculator.Round(ma, 2),
		RecentHigh:     calculator.Round(high, 2),
		RecentLow:      calculator.Round(low, 2),
		TodayVolume:    todayVolume,
		AvgVolume:      calculator.Round(avgVolume, 0),
	}
	if quote.AvgVolume10Day != nil && *quote.AvgVolume10Day > 0 {
		rv10 := calculator.Round(todayVolume / *quote.AvgVolume10Day, 2)
		m.RelativeVolume10d = &rv10
	}

	m.MarketCapFmt = NotAvailable
	if m.MarketCap != nil {
		m.MarketCapFmt = Display(FormatCap(*m.MarketCap))
	}
	m.AvgVolumeFmt = Display(FormatVolume(avgVolume))
	m.TodayVolumeFmt = Display(FormatVolume(todayVolume))
	m.FloatFmt = Display(FormatShares(valueOr(quote.FloatShares, 0)))
	m.ShortInterestFmt = Display(FormatFraction(shortInterest(quote)))
	m.PreMarketVolFmt = NotAvailable
	if quote.PreMarketVolume != nil && *quote.PreMarketVolume > 0 {
		m.PreMarketVolFmt = Display(FormatVolume(*quote.PreMarketVolume))
	}
	return m, true
}

// usableBars drops bars whose close is not a finite positive number.
func usableBars(bars []model.OHLCV) []model.OHLCV {
	out := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if !calculator.IsFinite(b.Close) || b.Close <= 0 {
			continue
		}
		if !calculator.IsFinite(b.High) || b.High <= 0 {
			b.High = b.Close
		}
		if !calculator.IsFinite(b.Low) || b.Low <= 0 {
			b.Low = b.Close
		}
		if !calculator.IsFinite(b.Open) {
			b.Open = 0
		}
		if !calculator.IsFinite(b.Volume) || b.Volume < 0 {
			b.Volume = 0
		}
		out = append(out, b)
	}
	return out
}

// marketCap prefers shares outstanding times live price over the provider's cached figure.
func marketCap(q *model.Quote, price float64) *float64 {
	if q.SharesOutstanding != nil && *q.SharesOutstanding > 0 {
		v := calculator.Round(*q.SharesOutstanding*price, 0)
		return &v
	}
	if q.MarketCap != nil && *q.MarketCap > 0 {
		v := *q.MarketCap
		return &v
	}
	return nil
}

func shortInterest(q *model.Quote) float64 {
	if q.ShortPercentOfFloat != nil && *q.ShortPercentOfFloat > 0 {
		return *q.ShortPercentOfFloat
	}
	if q.SharesShort != nil && q.FloatShares != nil && *q.SharesShort > 0 && *q.FloatShares > 0 {
		return *q.SharesShort / *q.FloatShares
	}
	return 0
}

func positiveOr(p *float64, fallback float64) float64 {
	if p == nil || *p <= 0 {
		return fallback
	}
	return *p
}

func nonNegativeOr(p *float64, fallback float64) float64 {
	if p == nil || *p < 0 {
		return fallback
	}
	return *p
}
