package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"HirschPicks/internal/collector"
	"HirschPicks/internal/model"
	"HirschPicks/internal/universe"
)

// topSignals is how many weighted signals are listed under each pick.
const topSignals = 3

// FormatPickSet formats a day's picks, one block per tier in category order.
func FormatPickSet(set *model.DailyPickSet, categories []model.Category) string {
	var b strings.Builder
	if set == nil {
		return "No picks available."
	}
	b.WriteString(fmt.Sprintf("🦌 <b>Hirsch Picks</b> | %s | %s window\n", set.DateKey, set.TimeWindow))
	if !set.HasRealData() {
		b.WriteString("\n⚠️ Market data unavailable, showing placeholders only.\n")
	}

	for _, cat := range categories {
		p := set.Picks[cat.ID]
		if p == nil {
			continue
		}
		b.WriteString("\n")
		b.WriteString(formatPick(cat, p))
	}
	if len(set.ExcludedTickers) > 0 {
		b.WriteString(fmt.Sprintf("\nRotated out: %s\n", strings.Join(set.ExcludedTickers, ", ")))
	}
	return b.String()
}

func formatPick(cat model.Category, p *model.Pick) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b>\n", html.EscapeString(cat.Label)))
	if p.Placeholder {
		b.WriteString("  N/A (data unavailable)\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  <b>%s</b> %s", html.EscapeString(p.Ticker), html.EscapeString(p.Company)))
	if p.Exchange != "" {
		b.WriteString(fmt.Sprintf(" (%s)", html.EscapeString(p.Exchange)))
	}
	b.WriteString("\n")
	if p.ExplorationBonus > 0 {
		b.WriteString(fmt.Sprintf("  Score: %d (base %d +%d explore)\n", p.Score, p.BaseScore, p.ExplorationBonus))
	} else {
		b.WriteString(fmt.Sprintf("  Score: %d\n", p.Score))
	}

	if m := p.Metrics; m != nil {
		b.WriteString(fmt.Sprintf("  Price: $%.2f (%+.2f%%) | RSI %.1f | RVOL %.2fx\n",
			m.Price, m.ChangePct, m.RSI, m.RelativeVolume))
		b.WriteString(fmt.Sprintf("  Cap: %s | Avg vol: %s | Float: %s | Short: %s\n",
			collector.Display(m.MarketCapFmt), collector.Display(m.AvgVolumeFmt),
			collector.Display(m.FloatFmt), collector.Display(m.ShortInterestFmt)))
	}

	labels, ok := universe.SignalLabels[p.Category]
	if !ok {
		labels = model.SignalNames
	}
	for _, i := range strongestSignals(p.WeightedSignals, topSignals) {
		b.WriteString(fmt.Sprintf("  • %s %.1f\n", labels[i], p.WeightedSignals[i]))
	}
	return b.String()
}

// strongestSignals returns the indexes of the n largest weighted signals.
func strongestSignals(s model.Signals, n int) []int {
	idx := make([]int, model.SignalCount)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return s[idx[a]] > s[idx[b]] })
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}

// FormatTrackRecord formats realized outcomes, newest first.
func FormatTrackRecord(tier string, rows []model.TrackRecordRow) string {
	var b strings.Builder
	title := "all tiers"
	if cat, ok := universe.Category(tier); ok {
		title = cat.Label
	}
	b.WriteString(fmt.Sprintf("📒 <b>Track record</b> | %s\n\n", html.EscapeString(title)))
	if len(rows) == 0 {
		b.WriteString("No completed picks yet.")
		return b.String()
	}

	wins := 0
	total := 0.0
	for _, r := range rows {
		icon := "🔴"
		if r.ReturnPct > 0 {
			icon = "🟢"
			wins++
		}
		total += r.ReturnPct
		b.WriteString(fmt.Sprintf("%s %s %s <b>%s</b> %+.2f%% (high %+.2f%%, low %+.2f%%)\n",
			icon, r.Date, r.Category, html.EscapeString(r.Ticker), r.ReturnPct, r.MaxRunUpPct, r.MaxDrawdownPct))
	}
	b.WriteString(fmt.Sprintf("\nWin rate: %d/%d | Avg return: %+.2f%%", wins, len(rows), total/float64(len(rows))))
	return b.String()
}

// FormatHelp lists the supported bot commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"/today - current picks\n" +
		"/rotate - regenerate excluding today's picks\n" +
		"/refresh - force regeneration\n" +
		"/track [tier] - realized outcomes (penny, small, mid, large, hyper)"
}
