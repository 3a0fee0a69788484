// Package cli provides the interactive pharmacy inventory command-line client.
//
// It wires configuration, the REST API client and an interactive REPL. A
// background watcher probes the server and shows online/offline in the
// prompt. The access token is cached in a file so a session survives restarts
// until the token expires.
//
// Commands: register, login, logout, list, add, update [id], delete [id],
// help, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
