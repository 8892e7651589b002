// Package cli implements the interactive StockSense terminal client.
//
// The REPL keeps one local session (under the fixed id "cli") in the session
// store. Commands:
//
//	help            show available commands
//	signup          create an account and log in
//	login           authenticate
//	logout          forget the local session
//	dashboard       show the dashboard (asks to log in when needed)
//	whoami          show the signed-in profile
//	exit | quit     leave the program
//
// Passwords are read without echo when stdin is a terminal and are wiped
// from memory after use.
package cli
