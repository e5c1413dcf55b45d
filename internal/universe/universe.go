// Package universe registers the five tiers and the candidates searched in each.
package universe

import "HirschPicks/internal/model"

// AlgoVersion is bumped whenever scoring changes; cached pick sets from another version are regenerated.
const AlgoVersion = 11

// Categories lists the five disjoint tiers, micro-cap to mega-cap.
var Categories = []model.Category{
	{ID: "penny", Label: "Penny Stocks", MinPrice: 0.1, MaxPrice: 5},
	{ID: "small", Label: "Small Cap", MinCap: 3e8, MaxCap: 2e9},
	{ID: "mid", Label: "Mid Cap", MinCap: 2e9, MaxCap: 1e10},
	{ID: "large", Label: "Large Cap", MinCap: 1e10, MaxCap: 2e11},
	{ID: "hyper", Label: "Hyperscalers", MinCap: 2e11},
}

// Category returns the tier with the given id.
func Category(id string) (model.Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Candidates is the seed universe per tier. Live data decides which of them fit on a given day.
var Candidates = map[string][]model.Candidate{
	"penny": {
		{Ticker: "MVST", Company: "Microvast Holdings Inc", Exchange: "NASDAQ"},
		{Ticker: "BBAI", Company: "BigBear.ai Holdings", Exchange: "NYSE"},
		{Ticker: "SNDL", Company: "SNDL Inc", Exchange: "NASDAQ"},
		{Ticker: "CLOV", Company: "Clover Health Investments", Exchange: "NASDAQ"},
		{Ticker: "NKLA", Company: "Nikola Corporation", Exchange: "NASDAQ"},
		{Ticker: "WKHS", Company: "Workhorse Group Inc", Exchange: "NASDAQ"},
		{Ticker: "FCEL", Company: "FuelCell Energy Inc", Exchange: "NASDAQ"},
		{Ticker: "SKLZ", Company: "Skillz Inc", Exchange: "NYSE"},
		{Ticker: "GFAI", Company: "Guardforce AI Co", Exchange: "NASDAQ"},
		{Ticker: "BNGO", Company: "Bionano Genomics Inc", Exchange: "NASDAQ"},
		{Ticker: "PSNY", Company: "Polestar Automotive", Exchange: "NASDAQ"},
		{Ticker: "GOEV", Company: "Canoo Inc", Exchange: "NASDAQ"},
		{Ticker: "DNA", Company: "Ginkgo Bioworks", Exchange: "NYSE"},
		{Ticker: "PLUG", Company: "Plug Power Inc", Exchange: "NASDAQ"},
		{Ticker: "BIOR", Company: "Biora Therapeutics", Exchange: "NASDAQ"},
	},
	"small": {
		{Ticker: "IONQ", Company: "IonQ Inc", Exchange: "NYSE"},
		{Ticker: "UPST", Company: "Upstart Holdings Inc", Exchange: "NASDAQ"},
		{Ticker: "RKLB", Company: "Rocket Lab USA Inc", Exchange: "NASDAQ"},
		{Ticker: "JOBY", Company: "Joby Aviation Inc", Exchange: "NYSE"},
		{Ticker: "ASTS", Company: "AST SpaceMobile Inc", Exchange: "NASDAQ"},
		{Ticker: "MARA", Company: "Marathon Digital Holdings", Exchange: "NASDAQ"},
		{Ticker: "RIOT", Company: "Riot Platforms Inc", Exchange: "NASDAQ"},
		{Ticker: "OPEN", Company: "Opendoor Technologies", Exchange: "NASDAQ"},
		{Ticker: "STEM", Company: "Stem Inc", Exchange: "NYSE"},
		{Ticker: "MP", Company: "MP Materials Corp", Exchange: "NYSE"},
		{Ticker: "DM", Company: "Desktop Metal Inc", Exchange: "NYSE"},
		{Ticker: "RDW", Company: "Redwire Corporation", Exchange: "NYSE"},
		{Ticker: "AEHR", Company: "Aehr Test Systems", Exchange: "NASDAQ"},
		{Ticker: "CELH", Company: "Celsius Holdings Inc", Exchange: "NASDAQ"},
		{Ticker: "SOFI", Company: "SoFi Technologies Inc", Exchange: "NASDAQ"},
	},
	"mid": {
		{Ticker: "CRWD", Company: "CrowdStrike Holdings", Exchange: "NASDAQ"},
		{Ticker: "DDOG", Company: "Datadog Inc", Exchange: "NASDAQ"},
		{Ticker: "NET", Company: "Cloudflare Inc", Exchange: "NYSE"},
		{Ticker: "ZS", Company: "Zscaler Inc", Exchange: "NASDAQ"},
		{Ticker: "BILL", Company: "BILL Holdings Inc", Exchange: "NYSE"},
		{Ticker: "TWLO", Company: "Twilio Inc", Exchange: "NYSE"},
		{Ticker: "PATH", Company: "UiPath Inc", Exchange: "NYSE"},
		{Ticker: "HOOD", Company: "Robinhood Markets Inc", Exchange: "NASDAQ"},
		{Ticker: "AFRM", Company: "Affirm Holdings Inc", Exchange: "NASDAQ"},
		{Ticker: "GTLB", Company: "GitLab Inc", Exchange: "NASDAQ"},
		{Ticker: "CFLT", Company: "Confluent Inc", Exchange: "NASDAQ"},
		{Ticker: "DOCN", Company: "DigitalOcean Holdings", Exchange: "NYSE"},
		{Ticker: "U", Company: "Unity Software Inc", Exchange: "NYSE"},
		{Ticker: "SNAP", Company: "Snap Inc", Exchange: "NYSE"},
		{Ticker: "ROKU", Company: "Roku Inc", Exchange: "NASDAQ"},
	},
	"large": {
		{Ticker: "AMD", Company: "Advanced Micro Devices", Exchange: "NASDAQ"},
		{Ticker: "NFLX", Company: "Netflix Inc", Exchange: "NASDAQ"},
		{Ticker: "CRM", Company: "Salesforce Inc", Exchange: "NYSE"},
		{Ticker: "PYPL", Company: "PayPal Holdings Inc", Exchange: "NASDAQ"},
		{Ticker: "UBER", Company: "Uber Technologies Inc", Exchange: "NYSE"},
		{Ticker: "SHOP", Company: "Shopify Inc", Exchange: "NYSE"},
		{Ticker: "SQ", Company: "Block Inc", Exchange: "NYSE"},
		{Ticker: "COIN", Company: "Coinbase Global Inc", Exchange: "NASDAQ"},
		{Ticker: "ABNB", Company: "Airbnb Inc", Exchange: "NASDAQ"},
		{Ticker: "DASH", Company: "DoorDash Inc", Exchange: "NASDAQ"},
		{Ticker: "SNOW", Company: "Snowflake Inc", Exchange: "NYSE"},
		{Ticker: "SPOT", Company: "Spotify Technology", Exchange: "NYSE"},
		{Ticker: "PANW", Company: "Palo Alto Networks", Exchange: "NASDAQ"},
		{Ticker: "NOW", Company: "ServiceNow Inc", Exchange: "NYSE"},
		{Ticker: "MDB", Company: "MongoDB Inc", Exchange: "NASDAQ"},
	},
	"hyper": {
		{Ticker: "NVDA", Company: "NVIDIA Corporation", Exchange: "NASDAQ"},
		{Ticker: "MSFT", Company: "Microsoft Corporation", Exchange: "NASDAQ"},
		{Ticker: "AAPL", Company: "Apple Inc", Exchange: "NASDAQ"},
		{Ticker: "AMZN", Company: "Amazon.com Inc", Exchange: "NASDAQ"},
		{Ticker: "GOOGL", Company: "Alphabet Inc", Exchange: "NASDAQ"},
		{Ticker: "META", Company: "Meta Platforms Inc", Exchange: "NASDAQ"},
		{Ticker: "TSLA", Company: "Tesla Inc", Exchange: "NASDAQ"},
		{Ticker: "AVGO", Company: "Broadcom Inc", Exchange: "NASDAQ"},
		{Ticker: "LLY", Company: "Eli Lilly and Company", Exchange: "NYSE"},
		{Ticker: "V", Company: "Visa Inc", Exchange: "NYSE"},
		{Ticker: "MA", Company: "Mastercard Inc", Exchange: "NYSE"},
		{Ticker: "JPM", Company: "JPMorgan Chase & Co", Exchange: "NYSE"},
		{Ticker: "WMT", Company: "Walmart Inc", Exchange: "NYSE"},
		{Ticker: "UNH", Company: "UnitedHealth Group", Exchange: "NYSE"},
		{Ticker: "ORCL", Company: "Oracle Corporation", Exchange: "NYSE"},
	},
}

// SignalLabels are the display names of the seven signals per tier.
var SignalLabels = map[string][model.SignalCount]string{
	"penny": {"Volatility (ATR%)", "Volume Surge", "Gap Catalyst", "5D Momentum", "Volume Acceleration", "Momentum (RSI)", "Trend Position"},
	"small": {"Volatility (ATR%)", "Relative Volume", "Gap Signal", "5D Momentum", "Volume Trend", "RSI Divergence", "Technical Setup"},
	"mid":   {"Volatility Profile", "Volume Flow", "Gap Analysis", "Momentum Score", "Volume Trend", "RSI Position", "Breakout Signal"},
	"large": {"Realized Volatility", "Institutional Volume", "Gap Assessment", "Trend Strength", "Volume Profile", "RSI Level", "Relative Strength"},
	"hyper": {"Volatility Regime", "Volume Dynamics", "Gap Analysis", "Trend Momentum", "Volume Character", "RSI Assessment", "Trend Confirmation"},
}
