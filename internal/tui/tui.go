// Package tui is the interactive view of a todo list.
//
// The model never edits items itself: every key is forwarded to the
// todolist.Store, and the list is redrawn when the store's change event
// arrives on the model's event channel.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todolist"
)

const (
	emptyMessage    = "Your todo list is empty. Press a to add a new task!"
	addPlaceholder  = "What needs to be done?"
	editPlaceholder = "Edit item text..."
	eventBuffer     = 64
	addCharLimit    = 200
)

// storeEventMsg carries a todolist.Event into the Bubble Tea loop.
type storeEventMsg todolist.Event

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) TitleText() string {
	box := boxUnchecked
	if i.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.Text)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.TitleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	editing func() (todolist.EditSession, bool)
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.Text
	if it.Completed {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(it.Text)
	}
	if ed, ok := d.editing(); ok && ed.ID == it.ID {
		textStyled = accentStyle.Render(it.Text + " (editing)")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+boxStyled+" "+textStyled)
}

// Model is the Bubble Tea model over a todolist.Store.
type Model struct {
	store       *todolist.Store
	events      chan todolist.Event
	done        chan struct{}
	closeOnce   *sync.Once
	unsubscribe func()

	list list.Model
	ti   textinput.Model // shared text input (add & edit)

	adding bool
	addErr string
	status string // last save error, cleared by the next good save

	width, height int
}

// New builds a model over s and subscribes it to the store's events.
// Call Close when done with it.
func New(s *todolist.Store) Model {
	events := make(chan todolist.Event, eventBuffer)
	unsubscribe := s.Subscribe(func(ev todolist.Event) {
		select {
		case events <- ev:
		default:
			// full: the next event triggers a full refresh anyway
		}
	})

	l := list.New(toListItems(s.Items()), itemDelegate{editing: s.Edit}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, toggleBind, deleteBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = addPlaceholder
	ti.CharLimit = addCharLimit

	w, h := 80, 24
	if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		w, h = tw, th
	}

	m := Model{
		store:       s,
		events:      events,
		done:        make(chan struct{}),
		closeOnce:   &sync.Once{},
		unsubscribe: unsubscribe,
		list:        l,
		ti:          ti,
		width:       w,
		height:      h,
	}
	m.list.Title = m.header()
	return m
}

// Close detaches the model from the store and releases a pending
// waitForEvent.
func (m Model) Close() {
	m.closeOnce.Do(func() {
		m.unsubscribe()
		close(m.done)
	})
}

// Run starts the TUI on the alternate screen and blocks until it quits.
func Run(s *todolist.Store) error {
	m := New(s)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func waitForEvent(ch <-chan todolist.Event, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-ch:
			return storeEventMsg(ev)
		case <-done:
			return nil
		}
	}
}

// Update and View implement Bubble Tea's Model.
func (m Model) Init() tea.Cmd { return waitForEvent(m.events, m.done) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case storeEventMsg:
		return m.applyEvent(todolist.Event(msg))
	}

	if m.adding {
		return m.updateAdd(msg)
	}
	if _, ok := m.store.Edit(); ok {
		return m.updateEdit(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) applyEvent(ev todolist.Event) (tea.Model, tea.Cmd) {
	switch {
	case ev.Err != nil:
		m.status = "save failed: " + ev.Err.Error()
	case ev.Kind != todolist.EventEditBegan && ev.Kind != todolist.EventEditChanged:
		m.status = ""
	}
	m.list.Title = m.header()
	cmd := m.list.SetItems(toListItems(m.store.Items()))
	return m, tea.Batch(cmd, waitForEvent(m.events, m.done))
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			if _, added := m.store.Add(m.ti.Value()); !added {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			m.closeInput()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			m.store.CommitEdit()
			m.closeInput()
			return m, nil
		case "esc":
			m.store.CancelEdit()
			m.closeInput()
			return m, nil
		}
	}
	before := m.ti.Value()
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if v := m.ti.Value(); v != before {
		m.store.UpdateEditText(v)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	x, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch x.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.list.FilterState() == list.Unfiltered {
			return m, tea.Quit
		}
	case " ":
		if it, ok := m.selected(); ok {
			m.store.ToggleComplete(it.ID)
		}
		return m, nil
	case "d":
		if it, ok := m.selected(); ok {
			m.store.Remove(it.ID)
		}
		return m, nil
	case "a":
		m.adding = true
		m.addErr = ""
		m.ti.CharLimit = addCharLimit
		m.ti.SetValue("")
		m.ti.Placeholder = addPlaceholder
		return m, m.ti.Focus()
	case "e":
		it, ok := m.selected()
		if !ok || !m.store.BeginEdit(it.ID) {
			return m, nil
		}
		// never cut an existing item short
		m.ti.CharLimit = utf8.RuneCountInString(it.Text) + addCharLimit
		m.ti.SetValue(it.Text)
		m.ti.CursorEnd()
		m.ti.Placeholder = editPlaceholder
		return m, m.ti.Focus()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m Model) header() string {
	done, pending := m.store.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), done+pending,
	)
}

func (m Model) View() string {
	_, editing := m.store.Edit()
	inputOpen := m.adding || editing

	listHeight := m.height - 4
	if inputOpen {
		listHeight = m.height - 8
	}
	if m.status != "" {
		listHeight--
	}
	m.list.SetSize(m.width-4, listHeight)

	content := m.list.View()
	if m.store.Len() == 0 {
		content = titleStyle.Render(m.list.Title) + "\n\n" + mutedStyle.Render(emptyMessage)
	}
	if m.status != "" {
		content += "\n" + errorStyle.Render(m.status)
	}
	if inputOpen {
		title := "Add new item"
		if editing {
			title = "Edit item"
		}
		if m.addErr != "" {
			title += ": " + errorStyle.Render(m.addErr)
		}
		content += "\n" + borderStyle.Render(title+"\n"+m.ti.View())
	}
	return panelString(strings.TrimRight(content, "\n"))
}

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{Item: it})
	}
	return out
}
