// Package tui is the terminal dashboard served locally and over SSH.
package tui

import (
	"context"
	"fmt"
	"time"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/state"
	"coin-dashboard/internal/viewmodel"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// MarketData is the read side of service.MarketService.
type MarketData interface {
	Coins(ctx context.Context) ([]domain.CoinRecord, service.Status)
	Global(ctx context.Context) (domain.GlobalMarketSnapshot, service.Status)
	Exchanges(ctx context.Context) ([]domain.ExchangeRecord, service.Status)
	Categories(ctx context.Context) ([]domain.Category, service.Status)
	MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, service.Status)
}

// Exporter stores an exported CSV and returns where it went.
type Exporter func(data []byte) (string, error)

type Services struct {
	Market     MarketData
	StaleAfter time.Duration
	PageSize   int
	// Export is nil when the session cannot write files.
	Export   Exporter
	Username string
}

// Messages
type (
	dataMsg struct {
		snap service.Snapshot
	}
	chartMsg struct {
		token  service.ChartToken
		points []domain.PricePoint
		status service.Status
	}
	storeMsg struct {
		change state.Change
	}
	exportMsg struct {
		path string
		err  error
	}
	tickMsg time.Time
)

// AppModel owns the view state of one session: selected coin and window,
// the search box, the table dialog and the shared store that links them.
type AppModel struct {
	svc  Services
	ctx  context.Context
	keys keyMap
	help help.Model

	width  int
	height int

	loaded bool
	snap   service.Snapshot
	chart  *service.ChartLoader

	options  []viewmodel.Option
	selected string
	window   domain.Window

	store       *state.Store
	changes     <-chan state.Change
	unsubscribe func()
	header      header
	dialog      dialog

	notice string
}

func NewAppModel(svc Services) *AppModel {
	if svc.PageSize <= 0 {
		svc.PageSize = viewmodel.DefaultPageSize
	}
	if svc.StaleAfter <= 0 {
		svc.StaleAfter = 1000 * time.Second
	}

	store := state.NewStore()
	searchWriter, _ := store.ClaimSearch()
	dialogWriter, _ := store.ClaimDialog()
	changes, unsubscribe := store.Subscribe()

	return &AppModel{
		svc:         svc,
		ctx:         context.Background(),
		keys:        defaultKeyMap(),
		help:        help.New(),
		chart:       service.NewChartLoader(),
		window:      domain.Window7D,
		store:       store,
		changes:     changes,
		unsubscribe: unsubscribe,
		header:      newHeader(searchWriter),
		dialog:      newDialog(dialogWriter, svc.PageSize),
		width:       100,
		height:      40,
	}
}

// SetContext ties data loads to a session lifetime.
func (m *AppModel) SetContext(ctx context.Context) {
	m.ctx = ctx
}

func (m *AppModel) SetSize(width, height int) {
	if width > 0 {
		m.width = width
		m.help.Width = width
	}
	if height > 0 {
		m.height = height
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadData(), m.tick(), m.waitForChange())
}

func (m *AppModel) loadData() tea.Cmd {
	market, ctx := m.svc.Market, m.ctx
	return func() tea.Msg {
		var snap service.Snapshot
		snap.Coins, snap.CoinsStatus = market.Coins(ctx)
		snap.Global, snap.GlobalStatus = market.Global(ctx)
		snap.Exchanges, snap.ExchangesStatus = market.Exchanges(ctx)
		snap.Categories, snap.CategoriesStatus = market.Categories(ctx)
		return dataMsg{snap: snap}
	}
}

func (m *AppModel) loadChart(coinID string) tea.Cmd {
	if coinID == "" {
		return nil
	}
	token := m.chart.Begin(coinID)
	market, ctx := m.svc.Market, m.ctx
	return func() tea.Msg {
		points, status := market.MarketChart(ctx, coinID)
		return chartMsg{token: token, points: points, status: status}
	}
}

func (m *AppModel) tick() tea.Cmd {
	return tea.Tick(m.svc.StaleAfter, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *AppModel) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return storeMsg{change: change}
	}
}

func (m *AppModel) exportCSV() tea.Cmd {
	export := m.svc.Export
	rows := viewmodel.TableRows(m.snap.Coins)
	return func() tea.Msg {
		if export == nil {
			return exportMsg{err: fmt.Errorf("export is not available in this session")}
		}
		out, err := viewmodel.ExportCSV(rows)
		if err != nil {
			return exportMsg{err: err}
		}
		path, err := export([]byte(out))
		return exportMsg{path: path, err: err}
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case dataMsg:
		m.loaded = true
		m.snap = msg.snap
		m.options = viewmodel.ComboboxOptions(msg.snap.Coins)
		if m.dialog.open {
			m.dialog.refresh(m.snap.Coins)
		}
		prev := m.selected
		m.selected = viewmodel.DefaultSelection(m.options, m.selected)
		if m.selected != prev {
			return m, m.loadChart(m.selected)
		}
		return m, nil

	case chartMsg:
		m.chart.Complete(msg.token, msg.points, msg.status)
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadData(), m.loadChart(m.selected), m.tick())

	case storeMsg:
		m.applyChange(msg.change)
		return m, m.waitForChange()

	case exportMsg:
		if msg.err != nil {
			m.notice = "Export failed: " + msg.err.Error()
		} else {
			m.notice = "Exported " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.dialog.open {
			return m.updateDialog(msg)
		}
		if m.header.focused() {
			return m.updateSearch(msg)
		}
		return m.updateHome(msg)
	}
	return m, nil
}

// applyChange reacts to writes made through the shared store.
func (m *AppModel) applyChange(c state.Change) {
	m.header.sync(c.Snapshot.Search)
	switch {
	case c.Snapshot.DialogOpen && !m.dialog.open:
		m.header.blur()
		m.dialog.show(c.Snapshot.Search)
		m.dialog.refresh(m.snap.Coins)
	case !c.Snapshot.DialogOpen && m.dialog.open:
		m.dialog.hide()
		m.header.clear()
	}
}

func (m *AppModel) quit() (tea.Model, tea.Cmd) {
	m.unsubscribe()
	return m, tea.Quit
}

func (m *AppModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Window7):
		m.window = domain.Window7D
	case key.Matches(msg, m.keys.Window15):
		m.window = domain.Window15D
	case key.Matches(msg, m.keys.Window30):
		m.window = domain.Window30D
	case key.Matches(msg, m.keys.PrevCoin):
		return m, m.stepCoin(-1)
	case key.Matches(msg, m.keys.NextCoin):
		return m, m.stepCoin(1)
	case key.Matches(msg, m.keys.Search):
		m.notice = ""
		return m, m.header.focus()
	case key.Matches(msg, m.keys.Table):
		m.dialog.writer.Open()
	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.loadData(), m.loadChart(m.selected))
	}
	return m, nil
}

// stepCoin moves the chart selection through the coin list, wrapping around.
func (m *AppModel) stepCoin(delta int) tea.Cmd {
	n := len(m.options)
	if n == 0 {
		return nil
	}
	idx := 0
	for i, opt := range m.options {
		if opt.Value == m.selected {
			idx = i
			break
		}
	}
	m.selected = m.options[((idx+delta)%n+n)%n].Value
	return m.loadChart(m.selected)
}

func (m *AppModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res := m.header.results(m.snap.Coins)
	switch {
	case key.Matches(msg, m.keys.Close):
		m.header.clear()
		m.header.blur()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.header.move(-1, res)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.header.move(1, res)
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if len(res.Hits) == 0 {
			return m, nil
		}
		m.header.choose(res)
		m.dialog.writer.Open()
		return m, nil
	}
	return m, m.header.update(msg)
}

func (m *AppModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.dialog
	if d.filtering() {
		if key.Matches(msg, m.keys.Close) || key.Matches(msg, m.keys.Select) {
			d.filter.Blur()
			return m, nil
		}
		cmd := d.updateFilter(msg)
		d.refresh(m.snap.Coins)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		d.writer.Close()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Filter):
		return m, d.filter.Focus()
	case key.Matches(msg, m.keys.SortCol):
		d.cycleColumn()
	case key.Matches(msg, m.keys.SortOrder):
		d.toggleOrder()
	case key.Matches(msg, m.keys.PrevPage):
		d.pageIndex--
	case key.Matches(msg, m.keys.NextPage):
		d.pageIndex++
	case key.Matches(msg, m.keys.FirstPage):
		d.pageIndex = 0
	case key.Matches(msg, m.keys.LastPage):
		d.pageIndex = d.page.PageCount - 1
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCSV()
	default:
		return m, nil
	}
	if d.pageIndex < 0 {
		d.pageIndex = 0
	}
	d.refresh(m.snap.Coins)
	return m, nil
}
