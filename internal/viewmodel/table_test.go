package viewmodel

import (
	"reflect"
	"strings"
	"testing"
)

func names(rows []TableRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestTableRows(t *testing.T) {
	t.Parallel()

	rows := TableRows(sampleCoins())
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	want := TableRow{Name: "Bitcoin", Icon: "btc.png", Price: 50000, Volume: 3e10, MarketRank: 1, MarketCap: 1e12, ChangePercentage: 1.2345, HighIn24: 51000, LowIn24: 49000}
	if rows[0] != want {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestSortSpecToggleCycle(t *testing.T) {
	t.Parallel()

	var spec SortSpec
	steps := []SortDirection{SortAsc, SortDesc, SortNone, SortAsc}
	for i, want := range steps {
		spec = spec.Toggle(ColumnPrice)
		if spec.Direction != want {
			t.Fatalf("click %d: expected %q, got %q", i+1, want, spec.Direction)
		}
	}

	spec = SortSpec{Column: ColumnPrice, Direction: SortDesc}.Toggle(ColumnName)
	if spec != (SortSpec{Column: ColumnName, Direction: SortAsc}) {
		t.Fatalf("expected new column to start ascending, got %+v", spec)
	}
}

func TestTableFilterSortPaginate(t *testing.T) {
	t.Parallel()

	rows := TableRows(sampleCoins())
	page := Table(rows, TableQuery{
		Filter:   "BITCOIN",
		Sort:     SortSpec{Column: ColumnPrice, Direction: SortDesc},
		PageSize: 2,
	})
	if page.Total != 3 || page.PageCount != 2 {
		t.Fatalf("unexpected totals: %+v", page)
	}
	if !reflect.DeepEqual(names(page.Rows), []string{"Bitcoin", "Wrapped Bitcoin"}) {
		t.Fatalf("unexpected first page: %v", names(page.Rows))
	}
	if page.CanPrev || !page.CanNext {
		t.Fatalf("unexpected navigation flags: %+v", page)
	}

	next := Table(rows, TableQuery{
		Filter:    "BITCOIN",
		Sort:      SortSpec{Column: ColumnPrice, Direction: SortDesc},
		PageIndex: 1,
		PageSize:  2,
	})
	if !reflect.DeepEqual(names(next.Rows), []string{"Bitcoin Cash"}) || !next.CanPrev || next.CanNext {
		t.Fatalf("unexpected second page: %+v", next)
	}
}

func TestTableIsIdempotent(t *testing.T) {
	t.Parallel()

	rows := TableRows(sampleCoins())
	q := TableQuery{Filter: "o", Sort: SortSpec{Column: ColumnChangePercentage, Direction: SortAsc}, PageIndex: 0, PageSize: 3}
	first := Table(rows, q)
	second := Table(rows, q)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical pages, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(names(rows), names(TableRows(sampleCoins()))) {
		t.Fatal("expected input rows to stay in upstream order")
	}
}

func TestTableUnsortedKeepsUpstreamOrder(t *testing.T) {
	t.Parallel()

	rows := TableRows(sampleCoins())
	page := Table(rows, TableQuery{Sort: SortSpec{Column: ColumnName}})
	if page.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", page.PageSize)
	}
	if !reflect.DeepEqual(names(page.Rows), names(rows)) {
		t.Fatalf("expected upstream order, got %v", names(page.Rows))
	}
}

func TestTableSortByNameIgnoresCase(t *testing.T) {
	t.Parallel()

	rows := []TableRow{{Name: "beta"}, {Name: "Alpha"}, {Name: "gamma"}}
	page := Table(rows, TableQuery{Sort: SortSpec{Column: ColumnName, Direction: SortAsc}})
	if !reflect.DeepEqual(names(page.Rows), []string{"Alpha", "beta", "gamma"}) {
		t.Fatalf("unexpected order: %v", names(page.Rows))
	}
}

func TestTableClampsPageIndex(t *testing.T) {
	t.Parallel()

	rows := TableRows(sampleCoins())
	page := Table(rows, TableQuery{PageIndex: 99, PageSize: 4})
	if page.PageIndex != 1 || len(page.Rows) != 2 {
		t.Fatalf("expected last page, got %+v", page)
	}

	empty := Table(rows, TableQuery{Filter: "nothing matches", PageIndex: -3})
	if empty.PageIndex != 0 || empty.PageCount != 1 || len(empty.Rows) != 0 || empty.Total != 0 {
		t.Fatalf("unexpected empty page: %+v", empty)
	}
}

func TestParseSortDirection(t *testing.T) {
	t.Parallel()

	if d, err := ParseSortDirection("DESC"); err != nil || d != SortDesc {
		t.Fatalf("expected desc, got %q err=%v", d, err)
	}
	if _, err := ParseSortDirection("sideways"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
	if !IsSortableColumn(ColumnMarketCap) || IsSortableColumn("icon") {
		t.Fatal("unexpected sortable columns")
	}
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	out, err := ExportCSV([]Row{{{Key: "name", Value: "Bitcoin"}, {Key: "price", Value: 50000.0}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "name,price\nBitcoin,50000" {
		t.Fatalf("unexpected csv: %q", out)
	}
}

func TestExportCSVUsesFirstRowHeader(t *testing.T) {
	t.Parallel()

	out, err := ExportCSV([]Row{
		{{Key: "name", Value: "Bitcoin"}, {Key: "price", Value: 50000}},
		{{Key: "price", Value: 3000}, {Key: "extra", Value: true}},
		{{Key: "name", Value: "Dogecoin, Inc"}, {Key: "price", Value: nil}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "name,price\nBitcoin,50000\n,3000\n\"Dogecoin, Inc\","
	if out != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", out, want)
	}
}

func TestExportCSVTableRows(t *testing.T) {
	t.Parallel()

	out, err := ExportCSV(TableRows(sampleCoins()[:1]))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out)
	}
	if lines[0] != "name,icon,price,volume,marketRank,marketCap,changePercentage,highIn24,lowIn24" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "Bitcoin,btc.png,50000,30000000000,1,1000000000000,1.2345,51000,49000" {
		t.Fatalf("unexpected row: %s", lines[1])
	}

	if empty, _ := ExportCSV([]TableRow{}); empty != "" {
		t.Fatalf("expected empty export, got %q", empty)
	}
}
