package tui

import (
	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/state"
	"coin-dashboard/internal/viewmodel"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// header is the live search box. It is the only writer of the shared search text.
type header struct {
	input  textinput.Model
	writer *state.SearchWriter
	cursor int
}

func newHeader(writer *state.SearchWriter) header {
	ti := textinput.New()
	ti.Placeholder = "Search coins"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return header{input: ti, writer: writer}
}

func (h *header) focused() bool {
	return h.input.Focused()
}

func (h *header) focus() tea.Cmd {
	h.cursor = 0
	return h.input.Focus()
}

func (h *header) blur() {
	h.input.Blur()
}

// clear empties the box and the shared search text.
func (h *header) clear() {
	h.input.SetValue("")
	h.cursor = 0
	h.writer.Set("")
}

func (h *header) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	before := h.input.Value()
	h.input, cmd = h.input.Update(msg)
	if v := h.input.Value(); v != before {
		h.cursor = 0
		h.writer.Set(v)
	}
	return cmd
}

// sync mirrors a store change made by another writer.
func (h *header) sync(text string) {
	if h.input.Value() != text {
		h.input.SetValue(text)
		h.cursor = 0
	}
}

func (h *header) results(coins []domain.CoinRecord) viewmodel.SearchResult {
	return viewmodel.LiveSearch(coins, h.input.Value(), viewmodel.LiveSearchLimit)
}

// move shifts the highlighted entry; the slot after the hits is "see more".
func (h *header) move(delta int, res viewmodel.SearchResult) {
	n := len(res.Hits)
	if res.More > 0 {
		n++
	}
	if n == 0 {
		h.cursor = 0
		return
	}
	h.cursor = ((h.cursor+delta)%n + n) % n
}

// choose writes the text the table dialog should filter by: the highlighted
// coin's name, or the typed text for "see more".
func (h *header) choose(res viewmodel.SearchResult) {
	if h.cursor < len(res.Hits) {
		name := res.Hits[h.cursor].Name
		h.input.SetValue(name)
		h.writer.Set(name)
	}
	h.blur()
}
