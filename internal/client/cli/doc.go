// Package cli provides the interactive line-oriented front end of the
// authdemo client.
//
// It wires configuration, the local session database, the auth service
// client and the session store, then runs a REPL over the four screens.
// Typical flow: restore the persisted session, start the background
// revalidation watcher, and execute user commands.
//
// Commands:
//   - home, login, register, dashboard
//   - status: session status and identity
//   - logout
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the screens package for details.
package cli
