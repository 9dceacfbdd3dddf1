package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Window7   key.Binding
	Window15  key.Binding
	Window30  key.Binding
	PrevCoin  key.Binding
	NextCoin  key.Binding
	Search    key.Binding
	Table     key.Binding
	Refresh   key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Close     key.Binding
	Filter    key.Binding
	SortCol   key.Binding
	SortOrder key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Export    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Window7:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "7D")),
		Window15:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "15D")),
		Window30:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "30D")),
		PrevCoin:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev coin")),
		NextCoin:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next coin")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Table:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "all coins")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Up:        key.NewBinding(key.WithKeys("up", "shift+tab")),
		Down:      key.NewBinding(key.WithKeys("down", "tab")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Filter:    key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter")),
		SortCol:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		SortOrder: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
		FirstPage: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		LastPage:  key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	}
}

// homeHelp and dialogHelp adapt keyMap to help.KeyMap for each view.
type homeHelp struct{ k keyMap }

func (h homeHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Window7, h.k.Window15, h.k.Window30, h.k.PrevCoin, h.k.NextCoin, h.k.Search, h.k.Table, h.k.Refresh, h.k.Quit}
}

func (h homeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type dialogHelp struct{ k keyMap }

func (h dialogHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Filter, h.k.SortCol, h.k.SortOrder, h.k.PrevPage, h.k.NextPage, h.k.FirstPage, h.k.LastPage, h.k.Export, h.k.Close}
}

func (h dialogHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
