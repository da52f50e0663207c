package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songtable/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsFetched MsgKind = iota
	MsgUploadComplete
	MsgClearComplete
)

type songsFetched struct {
	songs []*models.Song
	err   error
}

type uploadComplete struct {
	result *models.UploadResult
	err    error
}

// songsFetchedMsg is the constructor for [MsgSongsFetched]
func songsFetchedMsg(songs []*models.Song, err error) Msg {
	return Msg{kind: MsgSongsFetched, data: songsFetched{songs, err}}
}

// uploadCompleteMsg is the constructor for [MsgUploadComplete]
func uploadCompleteMsg(result *models.UploadResult, err error) Msg {
	return Msg{kind: MsgUploadComplete, data: uploadComplete{result, err}}
}

// clearCompleteMsg is the constructor for [MsgClearComplete]
func clearCompleteMsg(err error) Msg {
	return Msg{kind: MsgClearComplete, data: err}
}
