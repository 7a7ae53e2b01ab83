// Package tui is the full-screen front end of the authdemo client, built on
// bubbletea. It renders the same four screens as the REPL and drives them
// through the screens controllers. Network calls run as tea.Cmds so the UI
// stays responsive; their results arrive back in Update as messages.
package tui
