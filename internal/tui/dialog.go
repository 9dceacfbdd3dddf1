package tui

import (
	"strconv"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/state"
	"coin-dashboard/internal/viewmodel"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var columnTitles = map[string]string{
	viewmodel.ColumnName:             "Name",
	viewmodel.ColumnPrice:            "Price",
	viewmodel.ColumnVolume:           "Volume",
	viewmodel.ColumnMarketRank:       "Rank",
	viewmodel.ColumnMarketCap:        "Market Cap",
	viewmodel.ColumnChangePercentage: "24h %",
	viewmodel.ColumnHighIn24:         "24h High",
	viewmodel.ColumnLowIn24:          "24h Low",
}

// dialog is the full coin table. It is the only writer of the dialog flag.
type dialog struct {
	writer    *state.DialogWriter
	open      bool
	filter    textinput.Model
	sort      viewmodel.SortSpec
	column    int
	pageIndex int
	pageSize  int
	page      viewmodel.Page
	table     table.Model
}

func newDialog(writer *state.DialogWriter, pageSize int) dialog {
	ti := textinput.New()
	ti.Placeholder = "Filter by name"
	ti.Prompt = "Filter: "
	ti.CharLimit = 64

	t := table.New(
		table.WithColumns(tableColumns(viewmodel.SortSpec{})),
		table.WithHeight(pageSize+1),
	)
	t.SetStyles(tableStyles())

	return dialog{writer: writer, filter: ti, pageSize: pageSize, table: t}
}

// show opens the dialog locally, pre-filtered by the shared search text.
func (d *dialog) show(search string) {
	d.open = true
	d.filter.SetValue(search)
	d.pageIndex = 0
}

func (d *dialog) hide() {
	d.open = false
	d.filter.Blur()
	d.filter.SetValue("")
}

func (d *dialog) filtering() bool {
	return d.filter.Focused()
}

func (d *dialog) updateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	before := d.filter.Value()
	d.filter, cmd = d.filter.Update(msg)
	if d.filter.Value() != before {
		d.pageIndex = 0
	}
	return cmd
}

// cycleColumn moves the sort to the next column, ascending.
func (d *dialog) cycleColumn() {
	if d.sort.Active() {
		d.column = (d.column + 1) % len(viewmodel.SortableColumns)
	}
	d.sort = viewmodel.SortSpec{Column: viewmodel.SortableColumns[d.column], Direction: viewmodel.SortAsc}
}

// toggleOrder cycles the current column through asc, desc and unsorted.
func (d *dialog) toggleOrder() {
	d.sort = d.sort.Toggle(viewmodel.SortableColumns[d.column])
}

func (d *dialog) query() viewmodel.TableQuery {
	return viewmodel.TableQuery{
		Filter:    d.filter.Value(),
		Sort:      d.sort,
		PageIndex: d.pageIndex,
		PageSize:  d.pageSize,
	}
}

// refresh recomputes the visible page and clamps the page index.
func (d *dialog) refresh(coins []domain.CoinRecord) {
	d.page = viewmodel.Table(viewmodel.TableRows(coins), d.query())
	d.pageIndex = d.page.PageIndex

	rows := make([]table.Row, 0, len(d.page.Rows))
	for _, r := range d.page.Rows {
		rows = append(rows, table.Row{
			r.Name,
			viewmodel.FormatUSD(r.Price),
			"$" + viewmodel.FormatCompact(r.Volume),
			strconv.Itoa(r.MarketRank),
			"$" + viewmodel.FormatCompact(r.MarketCap),
			viewmodel.FormatSignedPercent(r.ChangePercentage, 2) + "%",
			viewmodel.FormatUSD(r.HighIn24),
			viewmodel.FormatUSD(r.LowIn24),
		})
	}
	d.table.SetColumns(tableColumns(d.sort))
	d.table.SetRows(rows)
}

func tableColumns(sort viewmodel.SortSpec) []table.Column {
	widths := []int{22, 14, 10, 6, 12, 9, 14, 14}
	cols := make([]table.Column, 0, len(viewmodel.SortableColumns))
	for i, name := range viewmodel.SortableColumns {
		title := columnTitles[name]
		if sort.Column == name {
			switch sort.Direction {
			case viewmodel.SortAsc:
				title += " ↑"
			case viewmodel.SortDesc:
				title += " ↓"
			}
		}
		cols = append(cols, table.Column{Title: title, Width: widths[i]})
	}
	return cols
}
