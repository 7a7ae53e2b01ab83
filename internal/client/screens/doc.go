// Package screens holds the front-end independent part of the four screens:
// the route table with its access guard and one controller per screen.
// Controllers return plain view structs; the REPL and the TUI only render
// them.
package screens
