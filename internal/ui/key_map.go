package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	prev     key.Binding
	next     key.Binding
	search   key.Binding
	sortBand key.Binding
	sortName key.Binding
	sortYear key.Binding
	pageSize key.Binding
	upload   key.Binding
	clear    key.Binding
	refresh  key.Binding
	enter    key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		sortBand: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort band")),
		sortName: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort song")),
		sortYear: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sort year")),
		pageSize: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "page size")),
		upload:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload CSV")),
		clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear all")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.prev, k.next, k.upload, k.clear, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.prev, k.next},
		{k.search, k.sortBand, k.sortName, k.sortYear, k.pageSize},
		{k.upload, k.clear, k.refresh},
		{k.help, k.quit},
	}
}
