package viewmodel

import (
	"fmt"
	"sort"
	"strings"

	"coin-dashboard/internal/domain"
)

const DefaultPageSize = 8

// Table columns, named after the row keys used in CSV headers.
const (
	ColumnName             = "name"
	ColumnPrice            = "price"
	ColumnVolume           = "volume"
	ColumnMarketRank       = "marketRank"
	ColumnMarketCap        = "marketCap"
	ColumnChangePercentage = "changePercentage"
	ColumnHighIn24         = "highIn24"
	ColumnLowIn24          = "lowIn24"
)

// SortableColumns is the order the terminal dialog cycles through.
var SortableColumns = []string{
	ColumnName,
	ColumnPrice,
	ColumnVolume,
	ColumnMarketRank,
	ColumnMarketCap,
	ColumnChangePercentage,
	ColumnHighIn24,
	ColumnLowIn24,
}

// TableRow is a flat display row of the full coin table.
type TableRow struct {
	Name             string  `json:"name"`
	Icon             string  `json:"icon"`
	Price            float64 `json:"price"`
	Volume           float64 `json:"volume"`
	MarketRank       int     `json:"marketRank"`
	MarketCap        float64 `json:"marketCap"`
	ChangePercentage float64 `json:"changePercentage"`
	HighIn24         float64 `json:"highIn24"`
	LowIn24          float64 `json:"lowIn24"`
}

// Fields returns the row as ordered key/value pairs.
func (r TableRow) Fields() []Field {
	return []Field{
		{ColumnName, r.Name},
		{"icon", r.Icon},
		{ColumnPrice, r.Price},
		{ColumnVolume, r.Volume},
		{ColumnMarketRank, r.MarketRank},
		{ColumnMarketCap, r.MarketCap},
		{ColumnChangePercentage, r.ChangePercentage},
		{ColumnHighIn24, r.HighIn24},
		{ColumnLowIn24, r.LowIn24},
	}
}

func TableRows(coins []domain.CoinRecord) []TableRow {
	rows := make([]TableRow, 0, len(coins))
	for _, coin := range coins {
		rows = append(rows, TableRow{
			Name:             coin.Name,
			Icon:             coin.Image,
			Price:            coin.CurrentPrice,
			Volume:           coin.TotalVolume,
			MarketRank:       coin.MarketCapRank,
			MarketCap:        coin.MarketCap,
			ChangePercentage: coin.PriceChangePercentage24h,
			HighIn24:         coin.High24h,
			LowIn24:          coin.Low24h,
		})
	}
	return rows
}

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case SortNone, SortAsc, SortDesc:
		return d, nil
	default:
		return SortNone, fmt.Errorf("unsupported sort direction: %q", s)
	}
}

type SortSpec struct {
	Column    string        `json:"column,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// Toggle advances the sort state for a click on column: a new column starts
// ascending, the same column moves asc → desc → unsorted.
func (s SortSpec) Toggle(column string) SortSpec {
	if s.Column != column || s.Direction == SortNone {
		return SortSpec{Column: column, Direction: SortAsc}
	}
	if s.Direction == SortAsc {
		return SortSpec{Column: column, Direction: SortDesc}
	}
	return SortSpec{}
}

func (s SortSpec) Active() bool {
	return s.Column != "" && s.Direction != SortNone
}

type TableQuery struct {
	Filter    string
	Sort      SortSpec
	PageIndex int
	PageSize  int
}

type Page struct {
	Rows      []TableRow `json:"rows"`
	PageIndex int        `json:"page_index"`
	PageCount int        `json:"page_count"`
	PageSize  int        `json:"page_size"`
	Total     int        `json:"total"`
	CanPrev   bool       `json:"can_prev"`
	CanNext   bool       `json:"can_next"`
}

// Table filters by name, sorts, then paginates. rows is never modified.
func Table(rows []TableRow, q TableQuery) Page {
	filtered := FilterRows(rows, q.Filter)
	SortRows(filtered, q.Sort)

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pageCount := (len(filtered) + size - 1) / size
	if pageCount == 0 {
		pageCount = 1
	}
	index := q.PageIndex
	if index < 0 {
		index = 0
	}
	if index > pageCount-1 {
		index = pageCount - 1
	}

	start := index * size
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return Page{
		Rows:      filtered[start:end],
		PageIndex: index,
		PageCount: pageCount,
		PageSize:  size,
		Total:     len(filtered),
		CanPrev:   index > 0,
		CanNext:   index < pageCount-1,
	}
}

// FilterRows returns a new slice of rows whose name contains filter, ignoring case.
func FilterRows(rows []TableRow, filter string) []TableRow {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		if needle == "" || strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortRows sorts rows in place; equal keys keep their relative order.
func SortRows(rows []TableRow, spec SortSpec) {
	if !spec.Active() {
		return
	}
	less := columnLess(spec.Column)
	if less == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if spec.Direction == SortDesc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func columnLess(column string) func(a, b TableRow) bool {
	switch column {
	case ColumnName:
		return func(a, b TableRow) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case ColumnPrice:
		return func(a, b TableRow) bool { return a.Price < b.Price }
	case ColumnVolume:
		return func(a, b TableRow) bool { return a.Volume < b.Volume }
	case ColumnMarketRank:
		return func(a, b TableRow) bool { return a.MarketRank < b.MarketRank }
	case ColumnMarketCap:
		return func(a, b TableRow) bool { return a.MarketCap < b.MarketCap }
	case ColumnChangePercentage:
		return func(a, b TableRow) bool { return a.ChangePercentage < b.ChangePercentage }
	case ColumnHighIn24:
		return func(a, b TableRow) bool { return a.HighIn24 < b.HighIn24 }
	case ColumnLowIn24:
		return func(a, b TableRow) bool { return a.LowIn24 < b.LowIn24 }
	default:
		return nil
	}
}

// IsSortableColumn reports whether column can be passed to SortSpec.
func IsSortableColumn(column string) bool {
	return columnLess(column) != nil
}
