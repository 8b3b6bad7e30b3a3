// Package cli provides the interactive auth command-line client.
//
// It connects to the gRPC endpoint, keeps the session token in memory and
// runs a small REPL:
//
//	Not logged in:  register, login, help, exit
//	Logged in:      me, update, passwd, avatar, delete, logout, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or stdin is closed.
package cli
