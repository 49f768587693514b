package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/todolist"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	space     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func newModel(t *testing.T, texts ...string) (Model, *todolist.Store) {
	t.Helper()
	s := todolist.New(store.NewMemory())
	s.Load()
	for _, txt := range texts {
		s.Add(txt)
	}
	m := New(s)
	t.Cleanup(m.Close)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, s
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return drain(t, m)
}

// drain feeds pending store events back into the model, as the running
// program would.
func drain(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case ev := <-m.events:
			next, _ := m.Update(storeEventMsg(ev))
			m = next.(Model)
		default:
			return m
		}
	}
}

func TestAddItem(t *testing.T) {
	m, s := newModel(t)

	m = update(t, m, runes("a"), runes("  Buy milk "), enter)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.False(t, m.adding)
	assert.Len(t, m.list.Items(), 1)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestAddBlankKeepsInputOpen(t *testing.T) {
	m, s := newModel(t)

	m = update(t, m, runes("a"), runes("   "), enter)
	assert.True(t, m.adding)
	assert.Equal(t, "Title cannot be empty", m.addErr)
	assert.Equal(t, 0, s.Len())

	m = update(t, m, esc)
	assert.False(t, m.adding)
	assert.Equal(t, 0, s.Len())
}

func TestToggleAndDelete(t *testing.T) {
	m, s := newModel(t, "A", "B")

	m = update(t, m, space)
	items := s.Items()
	assert.True(t, items[0].Completed)
	assert.False(t, items[1].Completed)

	m = update(t, m, space)
	assert.False(t, s.Items()[0].Completed)

	m = update(t, m, runes("d"))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "B", s.Items()[0].Text)
	assert.Len(t, m.list.Items(), 1)
}

func TestEditCommit(t *testing.T) {
	m, s := newModel(t, "A")

	m = update(t, m, runes("e"))
	ed, ok := s.Edit()
	require.True(t, ok)
	assert.Equal(t, "A", ed.Text)
	assert.Equal(t, "A", m.ti.Value())

	m = update(t, m, backspace, runes("Apples"))
	ed, _ = s.Edit()
	assert.Equal(t, "Apples", ed.Text, "keystrokes reach the edit session")

	m = update(t, m, enter)
	_, ok = s.Edit()
	assert.False(t, ok)
	assert.Equal(t, "Apples", s.Items()[0].Text)
	assert.Contains(t, m.View(), "Apples")
}

func TestEditBlankDiscards(t *testing.T) {
	m, s := newModel(t, "A")

	update(t, m, runes("e"), backspace, enter)

	_, ok := s.Edit()
	assert.False(t, ok)
	assert.Equal(t, "A", s.Items()[0].Text)
}

func TestEditLongItemKeepsText(t *testing.T) {
	long := strings.Repeat("é", 250)
	m, s := newModel(t, long)

	update(t, m, runes("e"), backspace, runes("x"), enter)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, strings.Repeat("é", 249)+"x", items[0].Text)
}

func TestAddCapsInput(t *testing.T) {
	m, s := newModel(t)

	update(t, m, runes("a"), runes(strings.Repeat("z", 250)), enter)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, strings.Repeat("z", 200), s.Items()[0].Text)
}

func TestEditCancel(t *testing.T) {
	m, s := newModel(t, "A")

	update(t, m, runes("e"), runes("BC"), esc)

	_, ok := s.Edit()
	assert.False(t, ok)
	assert.Equal(t, "A", s.Items()[0].Text)
}

func TestKeysOnEmptyListAreNoOps(t *testing.T) {
	m, s := newModel(t)

	m = update(t, m, space, runes("d"), runes("e"))
	assert.Equal(t, 0, s.Len())
	_, editing := s.Edit()
	assert.False(t, editing)
	assert.Contains(t, m.View(), "Your todo list is empty. Press a to add a new task!")
}

func TestCloseReleasesPendingWait(t *testing.T) {
	s := todolist.New(store.NewMemory())
	m := New(s)
	wait := m.Init()

	got := make(chan tea.Msg, 1)
	go func() { got <- wait() }()

	m.Close()
	m.Close()
	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("wait still blocked after Close")
	}

	s.Add("after close")
	assert.Empty(t, m.events)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, "A")

	for _, k := range []tea.KeyMsg{runes("q"), esc, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, "key %q", k.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), "key %q", k.String())
	}
}

type failingBackend struct{ store.Memory }

func (*failingBackend) Set(string, []byte) error { return errors.New("disk full") }

func TestSaveErrorShown(t *testing.T) {
	s := todolist.New(&failingBackend{})
	s.Load()
	m := New(s)
	t.Cleanup(m.Close)

	m = update(t, m, runes("a"), runes("A"), enter)
	assert.Equal(t, "save failed: disk full", m.status)
	assert.Contains(t, m.View(), "disk full")
	assert.Equal(t, 1, s.Len())
}

func TestHeaderCounts(t *testing.T) {
	m, _ := newModel(t, "A", "B", "C")
	m = update(t, m, space)
	done, pending := m.store.Stats()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
	assert.Contains(t, m.list.Title, "Total")
	assert.Contains(t, m.list.Title, "3")
}
