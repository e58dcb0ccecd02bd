// Package ui implements the interactive terminal movie browser.
//
// The browser is a bubbletea program with five views: the movie list, a
// movie detail pane, genre/director panes (the terminal equivalent of the
// web client's modal dialogs), and a profile pane.
//
// Favorite toggling is confirm-then-update: pressing "f" dispatches the
// mutation through the reconciler, and the star marker is rebuilt from the
// cached session only after the server has confirmed. A rejected toggle
// renders an error notice and leaves the marker as it was.
package ui
