package tui

import (
	"fmt"
	"strconv"
	"strings"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/viewmodel"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#6B7280"))
	highlightStyle = lipgloss.NewStyle().Reverse(true)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#D1D5DB")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7C3AED"))
	return s
}

func changeStyle(positive bool) lipgloss.Style {
	if positive {
		return upStyle
	}
	return downStyle
}

func (m *AppModel) View() string {
	if m.dialog.open {
		return m.dialogView()
	}
	return m.homeView()
}

func (m *AppModel) homeView() string {
	title := "Crypto Market Dashboard"
	if m.svc.Username != "" {
		title += mutedStyle.Render("  " + m.svc.Username)
	}
	sections := []string{
		titleStyle.Render(title),
		m.searchView(),
	}
	if !m.loaded {
		sections = append(sections, mutedStyle.Render("Loading market data..."))
		sections = append(sections, m.help.View(homeHelp{m.keys}))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		m.cardsView(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.overviewView(), m.highlightsView()),
		m.chartView(),
		m.summaryView(),
	)
	if m.notice != "" {
		sections = append(sections, mutedStyle.Render(m.notice))
	}
	sections = append(sections, m.help.View(homeHelp{m.keys}))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *AppModel) searchView() string {
	lines := []string{m.header.input.View()}
	if !m.header.focused() {
		return lines[0]
	}
	res := m.header.results(m.snap.Coins)
	if strings.TrimSpace(m.header.input.Value()) != "" && len(res.Hits) == 0 {
		lines = append(lines, mutedStyle.Render("  No coins found"))
	}
	for i, hit := range res.Hits {
		line := fmt.Sprintf("  %-24s %s", hit.Name, hit.Price)
		if i == m.header.cursor {
			line = highlightStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if label := res.MoreLabel(); label != "" {
		line := "  " + label
		if m.header.cursor == len(res.Hits) {
			line = highlightStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *AppModel) cardsView() string {
	if msg := statusLine(m.snap.CoinsStatus, domain.ResourceCoins); msg != "" && !m.snap.CoinsStatus.HasData() {
		return msg
	}
	cards := viewmodel.TopPriceCards(m.snap.Coins, viewmodel.TopCardCount)
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(c.Icon+" "+c.Name),
			c.PriceText,
			changeStyle(c.Direction == viewmodel.DirectionUp).Render(c.Change),
		)
		rendered = append(rendered, panelStyle.BorderForeground(lipgloss.Color(c.Color)).Width(24).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *AppModel) overviewView() string {
	if !m.snap.GlobalStatus.HasData() {
		return panelStyle.Render(statusOr(m.snap.GlobalStatus, domain.ResourceGlobal, "Global market: no data"))
	}
	o := viewmodel.BuildOverview(m.snap.Global)
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Global Market"),
		"Active coins: "+viewmodel.FormatNumber(float64(o.ActiveCryptocurrencies)),
		"Market cap:   $"+viewmodel.FormatCompact(o.TotalMarketCap),
		"Volume 24h:   $"+viewmodel.FormatCompact(o.TotalVolume),
		"BTC dominance: "+strconv.FormatFloat(o.BitcoinDominance, 'f', 2, 64)+"%",
		"Cap change:   "+changeStyle(o.MarketCapChange24h >= 0).Render(viewmodel.FormatSignedPercent(o.MarketCapChange24h, 2)+"%"),
	)
	return panelStyle.Render(body)
}

func (m *AppModel) highlightsView() string {
	h := viewmodel.BuildHighlights(m.snap.Categories, m.snap.Exchanges)
	lines := []string{titleStyle.Render("Highlights")}
	if len(h.Categories) == 0 {
		lines = append(lines, mutedStyle.Render(statusOr(m.snap.CategoriesStatus, domain.ResourceCategories, "No categories")))
	}
	for _, name := range h.Categories {
		lines = append(lines, "• "+name)
	}
	lines = append(lines, "Market pairs: "+viewmodel.FormatCompact(h.MarketPairs)+" BTC")
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *AppModel) chartView() string {
	tabs := make([]string, 0, len(domain.SupportedWindows))
	for _, w := range domain.SupportedWindows {
		if w == m.window {
			tabs = append(tabs, activeTabStyle.Render(string(w)))
		} else {
			tabs = append(tabs, tabStyle.Render(string(w)))
		}
	}

	opt, _ := viewmodel.FindOption(m.options, m.selected)
	heading := opt.Label
	if price := viewmodel.SelectedPrice(m.options, m.selected); price != "" {
		heading += "  " + price
		heading += "  " + changeStyle(opt.Direction == viewmodel.DirectionUp).Render(opt.Change+"%")
	}

	chart := m.chart.Current()
	series := viewmodel.ChartSeries(chart.Points, m.window)
	var body string
	switch {
	case chart.Status.Loading && len(series) == 0:
		body = mutedStyle.Render("Loading chart...")
	case chart.Status.IsError && len(series) == 0:
		body = errorStyle.Render("Failed to load chart")
	case len(series) == 0:
		body = mutedStyle.Render("No chart data")
	default:
		first, last := series[0], series[len(series)-1]
		body = lipgloss.JoinVertical(lipgloss.Left,
			priceGraph(series, m.width-8),
			mutedStyle.Render(first.Date+" "+viewmodel.FormatUSD(first.Price)+"  →  "+last.Date+" "+viewmodel.FormatUSD(last.Price)),
		)
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(heading), "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...)),
		body,
	))
}

func (m *AppModel) summaryView() string {
	rows := viewmodel.MarketSummary(m.snap.Coins, viewmodel.SummaryRowCount)
	lines := []string{titleStyle.Render("Market Summary")}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("%-4s %-20s %16s %10s %22s", "#", "Name", "Price", "24h", "Volume")))
	for _, r := range rows {
		change := changeStyle(r.IsPositive).Render(fmt.Sprintf("%10s", r.Change))
		lines = append(lines, fmt.Sprintf("%-4d %-20s %16s %s %22s", r.MarketRank, r.Name, r.Price, change, r.Volume))
	}
	if msg := statusLine(m.snap.CoinsStatus, domain.ResourceCoins); msg != "" {
		lines = append(lines, msg)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *AppModel) dialogView() string {
	d := &m.dialog
	page := d.page
	lines := []string{
		titleStyle.Render("All Coins"),
		d.filter.View(),
		d.table.View(),
		mutedStyle.Render(fmt.Sprintf("Page %d of %d · %d coins", page.PageIndex+1, page.PageCount, page.Total)),
	}
	if page.Total == 0 {
		lines = append(lines, mutedStyle.Render("No results."))
	}
	if m.notice != "" {
		lines = append(lines, mutedStyle.Render(m.notice))
	}
	lines = append(lines, m.help.View(dialogHelp{m.keys}))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// statusLine flags a failed load; stale data stays visible above it.
func statusLine(status service.Status, resource string) string {
	if !status.IsError {
		return ""
	}
	return errorStyle.Render("Failed to refresh " + resource)
}

func statusOr(status service.Status, resource, fallback string) string {
	if status.Loading {
		return "Loading " + resource + "..."
	}
	if msg := statusLine(status, resource); msg != "" {
		return msg
	}
	return fallback
}
