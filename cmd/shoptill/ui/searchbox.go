package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"shoptill/internal/api"
	"shoptill/internal/billing"
)

// minSearchChars gates lookups: 0-1 character input never hits the
// backend.
const minSearchChars = 2

// SearchResult is one selectable match from a catalog, supplier, or
// customer lookup.
type SearchResult struct {
	ID     int64
	Name   string
	Price  float64
	Detail string
	Extra  string
	Custom bool
}

// LineItem converts a committed result into a bill line.
func (r SearchResult) LineItem() billing.LineItem {
	return billing.LineItem{
		ItemID:    r.ID,
		Name:      r.Name,
		UnitPrice: r.Price,
		Quantity:  1,
		Custom:    r.Custom,
	}
}

// LookupFunc resolves a query to ranked results. The server owns the
// ranking; results are displayed in the given order.
type LookupFunc func(ctx context.Context, query string) ([]SearchResult, error)

// SearchBox is the search-and-select control used for items,
// suppliers, and customers. Keyboard contract: Down/Up move the
// highlight clamped to the result range, Enter commits the highlighted
// match (or a custom zero-priced entry when allowed and nothing
// matched), Esc dismisses the open list without committing. After a
// commit the box locks into a display of the chosen name until
// explicitly cleared.
type SearchBox struct {
	id       string
	input    textinput.Model
	lookup   LookupFunc
	seq      *api.Sequencer
	debounce Debouncer

	results   []SearchResult
	active    int
	open      bool
	searching bool
	committed *SearchResult

	// AllowCustom commits free text as a synthetic zero-priced entry
	// when no match exists.
	AllowCustom bool

	// ShowPrice renders prices next to matches (off for suppliers and
	// customers).
	ShowPrice bool

	styles Styles
}

// NewSearchBox creates a search box with its own debounce and request
// sequence.
func NewSearchBox(placeholder string, lookup LookupFunc, styles Styles, debounce time.Duration) SearchBox {
	id := uuid.NewString()

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 80
	ti.Width = ItemColWidth - 2

	return SearchBox{
		id:       id,
		input:    ti,
		lookup:   lookup,
		seq:      &api.Sequencer{},
		debounce: NewDebouncer(id, debounce),
		styles:   styles,
	}
}

// Focus gives the box keyboard focus. A locked box stays locked; clear
// it first to search again.
func (b *SearchBox) Focus() tea.Cmd {
	return b.input.Focus()
}

// Blur removes focus and closes the result list without committing.
func (b *SearchBox) Blur() {
	b.input.Blur()
	b.open = false
}

// Focused reports whether the box has keyboard focus.
func (b *SearchBox) Focused() bool {
	return b.input.Focused()
}

// Committed returns the selected result, or nil before a commit.
func (b *SearchBox) Committed() *SearchResult {
	return b.committed
}

// Locked reports whether the box is a fixed display of a committed
// choice.
func (b *SearchBox) Locked() bool {
	return b.committed != nil
}

// Clear unlocks the box and resets it to an empty query.
func (b *SearchBox) Clear() {
	b.committed = nil
	b.results = nil
	b.open = false
	b.searching = false
	b.input.SetValue("")
	b.debounce.Cancel()
}

// Update handles messages. The third return value is non-nil exactly
// when this update committed a selection; the caller owns what happens
// next (normally moving focus to the quantity field).
func (b SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd, *SearchResult) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !b.input.Focused() {
			return b, nil, nil
		}
		if b.Locked() {
			// Backspace clears the locked choice for re-entry.
			if msg.String() == "backspace" || msg.String() == "delete" {
				b.Clear()
				return b, b.input.Focus(), nil
			}
			return b, nil, nil
		}

		switch msg.String() {
		case "down":
			if b.open && b.active < len(b.results)-1 {
				b.active++
			}
			return b, nil, nil
		case "up":
			if b.open && b.active > 0 {
				b.active--
			}
			return b, nil, nil
		case "esc":
			if b.open {
				b.open = false
				b.results = nil
			}
			return b, nil, nil
		case "enter":
			return b.commit()
		}

		before := b.input.Value()
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		if b.input.Value() != before {
			return b, tea.Batch(cmd, b.onQueryChange()), nil
		}
		return b, cmd, nil

	case DebounceMsg:
		if !b.debounce.Ready(msg) {
			return b, nil, nil
		}
		query := strings.TrimSpace(b.input.Value())
		if len([]rune(query)) < minSearchChars {
			return b, nil, nil
		}
		b.searching = true
		return b, b.lookupCmd(query), nil

	case SearchResultsMsg:
		if msg.Owner != b.id || b.seq.Stale(msg.Seq) {
			return b, nil, nil
		}
		b.searching = false
		if msg.Err != nil {
			// Read failures degrade to an empty result list.
			b.results = nil
			b.open = b.input.Focused()
			return b, nil, nil
		}
		if len(msg.Results) > MaxSearchResults {
			msg.Results = msg.Results[:MaxSearchResults]
		}
		b.results = msg.Results
		b.active = 0
		b.open = b.input.Focused()
		return b, nil, nil
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd, nil
}

// onQueryChange gates and debounces the lookup.
func (b *SearchBox) onQueryChange() tea.Cmd {
	query := strings.TrimSpace(b.input.Value())
	if len([]rune(query)) < minSearchChars {
		b.results = nil
		b.open = false
		b.debounce.Cancel()
		return nil
	}
	return b.debounce.Trigger()
}

func (b *SearchBox) lookupCmd(query string) tea.Cmd {
	seq := b.seq.Next()
	owner, lookup := b.id, b.lookup
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		results, err := lookup(ctx, query)
		return SearchResultsMsg{Owner: owner, Seq: seq, Results: results, Err: err}
	}
}

// commit locks in the highlighted match, or a custom entry when
// allowed. ID, name, and price always land together.
func (b SearchBox) commit() (SearchBox, tea.Cmd, *SearchResult) {
	if b.open && b.active >= 0 && b.active < len(b.results) {
		r := b.results[b.active]
		b.committed = &r
		b.results = nil
		b.open = false
		b.input.SetValue(r.Name)
		return b, nil, &r
	}

	query := strings.TrimSpace(b.input.Value())
	if b.AllowCustom && query != "" {
		r := SearchResult{Name: query, Custom: true}
		b.committed = &r
		b.results = nil
		b.open = false
		return b, nil, &r
	}
	return b, nil, nil
}

// View renders the input and, when open, the result list beneath it.
func (b SearchBox) View() string {
	frame := b.styles.InputFrame
	if b.input.Focused() {
		frame = b.styles.FocusFrame
	}

	if b.Locked() {
		label := b.committed.Name
		if b.ShowPrice && !b.committed.Custom {
			label += "  " + b.styles.Muted.Render(billing.Money(b.committed.Price))
		}
		return frame.Render(b.styles.Bold.Render(label))
	}

	var sb strings.Builder
	sb.WriteString(frame.Render(b.input.View()))

	if b.open {
		sb.WriteString("\n")
		if len(b.results) == 0 {
			note := "no matches"
			if b.AllowCustom {
				note += ", enter adds a custom entry"
			}
			if b.searching {
				note = "searching..."
			}
			sb.WriteString(b.styles.Muted.Render("  " + note))
			return sb.String()
		}
		for i, r := range b.results {
			line := r.Name
			if b.ShowPrice {
				line = fmt.Sprintf("%s  %s", r.Name, billing.Money(r.Price))
			}
			if r.Detail != "" {
				line += "  " + r.Detail
			}
			if i == b.active {
				sb.WriteString(b.styles.Selected.Render("▸ " + line))
			} else {
				sb.WriteString(b.styles.Body.Render("  " + line))
			}
			if i < len(b.results)-1 {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
